package service

import (
	"context"
	"strings"
	"sync"

	"github.com/netpesa/netpesa/billing"
)

// TransactionService reads M-Pesa payment records. Filter changes on the
// transactions page can arrive faster than the upstream answers, so every
// List cancels the previous in-flight request; only the newest filter's
// result ever lands.
type TransactionService struct {
	mu     sync.Mutex
	cancel context.CancelFunc

	page   []billing.Transaction
	pageOf billing.TransactionParams
}

// List fetches one page, cancelling any still-running fetch first. The
// returned page is also cached for local search.
func (s *TransactionService) List(ctx context.Context, params billing.TransactionParams) ([]billing.Transaction, *billing.Pagination, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	txs, pg, err := client.ListTransactions(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.page = txs
	s.pageOf = params
	s.mu.Unlock()

	return txs, pg, nil
}

// SearchLocal narrows the last fetched page by phone, receipt or customer
// name. It never refetches and never mutates the cached page; clearing
// the query restores the full page.
func (s *TransactionService) SearchLocal(query string) []billing.Transaction {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return page
	}

	out := make([]billing.Transaction, 0, len(page))
	for _, tx := range page {
		if strings.Contains(strings.ToLower(tx.Phone), query) ||
			strings.Contains(strings.ToLower(tx.Receipt), query) ||
			strings.Contains(strings.ToLower(tx.CustomerName), query) {
			out = append(out, tx)
		}
	}
	return out
}
