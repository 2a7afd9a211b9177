package service

import (
	"context"
	"strings"

	"github.com/netpesa/netpesa/billing"
)

// CustomerService reads subscriber accounts from the billing API. The
// panel never mutates customers; signup and renewal happen upstream.
type CustomerService struct{}

func (s *CustomerService) List(ctx context.Context, params billing.CustomerParams) ([]billing.Customer, *billing.Pagination, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, nil, err
	}
	return client.ListCustomers(ctx, params)
}

// FilterLocal narrows an already-fetched page by name, phone or MAC
// without touching the upstream. The input slice is left intact.
func (s *CustomerService) FilterLocal(customers []billing.Customer, query string) []billing.Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return customers
	}
	out := make([]billing.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Phone), query) ||
			strings.Contains(strings.ToLower(c.Mac), query) {
			out = append(out, c)
		}
	}
	return out
}
