package service

import (
	"context"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/util/common"
)

// AdvertiserService manages ad-placing businesses. Create-only by design;
// deactivation happens upstream.
type AdvertiserService struct{}

func (s *AdvertiserService) List(ctx context.Context) ([]billing.Advertiser, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.ListAdvertisers(ctx)
}

func (s *AdvertiserService) Create(ctx context.Context, input billing.AdvertiserInput) (*billing.Advertiser, error) {
	if input.Name == "" {
		return nil, common.NewError("advertiser name can not be empty")
	}
	if input.Phone == "" {
		return nil, common.NewError("advertiser phone can not be empty")
	}
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.CreateAdvertiser(ctx, input)
}
