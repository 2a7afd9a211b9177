package service

import (
	"context"

	"github.com/netpesa/netpesa/billing"
)

// RatingService reads customer satisfaction entries. Geotagged ratings
// feed the coverage map; entries without coordinates only appear in the
// list view.
type RatingService struct{}

func (s *RatingService) List(ctx context.Context, stars int) ([]billing.Rating, error) {
	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	return client.ListRatings(ctx, stars)
}

// Geotagged filters a rating list down to the entries that can be pinned
// on the map.
func (s *RatingService) Geotagged(ratings []billing.Rating) []billing.Rating {
	out := make([]billing.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.Latitude != nil && r.Longitude != nil {
			out = append(out, r)
		}
	}
	return out
}
