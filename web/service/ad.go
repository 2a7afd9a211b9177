package service

import (
	"context"
	"errors"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/util/common"
)

// ErrNoChanges is returned when an edit submits the ad exactly as it was.
var ErrNoChanges = errors.New("no fields changed")

// AdService manages advertising inventory through the billing API.
type AdService struct{}

func (s *AdService) List(ctx context.Context) ([]billing.Ad, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.ListAds(ctx)
}

func (s *AdService) Get(ctx context.Context, id int) (*billing.Ad, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.GetAd(ctx, id)
}

func (s *AdService) Create(ctx context.Context, input billing.AdInput) (*billing.Ad, error) {
	if input.Title == "" {
		return nil, common.NewError("ad title can not be empty")
	}
	if input.Price < 0 {
		return nil, common.NewError("ad price can not be negative")
	}
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.CreateAd(ctx, input)
}

// Update refetches the current ad, diffs it against the edited copy and
// patches only the changed fields. Submitting an unchanged ad is reported
// as ErrNoChanges instead of a no-op round trip to the upstream.
func (s *AdService) Update(ctx context.Context, edited billing.Ad) (*billing.Ad, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}

	current, err := client.GetAd(ctx, edited.Id)
	if err != nil {
		return nil, err
	}

	fields := billing.DiffAd(*current, edited)
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}
	return client.UpdateAd(ctx, edited.Id, fields)
}

func (s *AdService) Delete(ctx context.Context, id int) error {
	client, err := BillingAPI()
	if err != nil {
		return err
	}
	return client.DeleteAd(ctx, id)
}
