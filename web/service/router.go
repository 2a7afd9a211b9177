package service

import (
	"context"

	"github.com/netpesa/netpesa/billing"
)

// RouterService reads access points and their telemetry from the billing
// API for the routers page. The dashboard pollers own their own caching;
// this service is for direct, uncached views.
type RouterService struct{}

func (s *RouterService) List(ctx context.Context) ([]billing.Router, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.ListRouters(ctx)
}

func (s *RouterService) Status(ctx context.Context, routerId int) (*billing.RouterStatus, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.RouterStatus(ctx, routerId)
}

func (s *RouterService) Bandwidth(ctx context.Context, routerId, hours int) ([]billing.BandwidthPoint, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.BandwidthHistory(ctx, routerId, hours)
}
