package service

import (
	"context"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/util/common"
)

// PlanService manages service tiers through the billing API.
type PlanService struct{}

func (s *PlanService) List(ctx context.Context) ([]billing.Plan, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.ListPlans(ctx)
}

func (s *PlanService) Create(ctx context.Context, input billing.PlanInput) (*billing.Plan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.CreatePlan(ctx, input)
}

func (s *PlanService) Delete(ctx context.Context, id int) error {
	client, err := BillingAPI()
	if err != nil {
		return err
	}
	return client.DeletePlan(ctx, id)
}

func validatePlanInput(input billing.PlanInput) error {
	if input.Name == "" {
		return common.NewError("plan name can not be empty")
	}
	if input.Price < 0 {
		return common.NewError("plan price can not be negative")
	}
	if input.DurationValue <= 0 {
		return common.NewError("plan duration must be positive")
	}
	switch input.DurationUnit {
	case "minutes", "hours", "days", "months":
	default:
		return common.NewErrorf("unknown duration unit <%v>", input.DurationUnit)
	}
	switch input.ConnectionType {
	case "hotspot", "pppoe":
	default:
		return common.NewErrorf("unknown connection type <%v>", input.ConnectionType)
	}
	return nil
}
