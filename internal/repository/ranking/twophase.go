package ranking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// hydrator loads restaurants and their ratings by id.
type hydrator interface {
	GetByID(ctx context.Context, id string) (domrest.Restaurant, error)
	Ratings(ctx context.Context, restaurantID string) ([]domrest.Rating, error)
}

// TwoPhase ranks with an aggregation over ratings followed by one restaurant
// read and one ratings read per group.
type TwoPhase struct {
	ratings     db.Collection
	restaurants hydrator
}

// NewTwoPhase creates the two-phase ranker.
func NewTwoPhase(s store, h hydrator) *TwoPhase {
	return &TwoPhase{ratings: s.Collection(schema.RatingsCollection), restaurants: h}
}

// Top returns up to domrest.TopN restaurants by average stars, best first.
// Groups whose restaurant no longer exists are dropped.
func (t *TwoPhase) Top(ctx context.Context) ([]domrest.Ranked, error) {
	rows, err := aggregate(ctx, t.ratings, averagesPipeline(domrest.TopN))
	if err != nil {
		return nil, err
	}

	out := make([]domrest.Ranked, 0, len(rows))
	for _, row := range rows {
		id := row.RestaurantID.Hex()

		rest, err := t.restaurants.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Debug("ranking: dropping ratings of missing restaurant",
				zap.String("restaurant_id", id), zap.Float64("average", row.Average))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load ranked restaurant %s: %w", id, err)
		}

		ratings, err := t.restaurants.Ratings(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load ratings of %s: %w", id, err)
		}
		for _, r := range ratings {
			rest.AddRating(r)
		}

		out = append(out, domrest.Ranked{Restaurant: rest, AverageStars: row.Average})
	}
	return out, nil
}
