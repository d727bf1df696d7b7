package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/db"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// Lookup ranks in a single aggregation round trip, joining the restaurant
// and its ratings onto every group.
type Lookup struct {
	ratings db.Collection
}

// NewLookup creates the join-based ranker.
func NewLookup(s store) *Lookup {
	return &Lookup{ratings: s.Collection(schema.RatingsCollection)}
}

// Top returns up to domrest.TopN restaurants by average stars, best first.
// Groups that join no restaurant are skipped.
func (l *Lookup) Top(ctx context.Context) ([]domrest.Ranked, error) {
	pipeline := append(averagesPipeline(domrest.TopN), lookupStages()...)
	rows, err := aggregate(ctx, l.ratings, pipeline)
	if err != nil {
		return nil, err
	}

	out := make([]domrest.Ranked, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if len(row.Restaurant) == 0 {
			logger.FromContext(ctx).Debug("ranking: dropping ratings of missing restaurant",
				zap.String("restaurant_id", row.RestaurantID.Hex()), zap.Float64("average", row.Average))
			continue
		}

		// _id is unique, so at most one restaurant joins.
		rest, err := schema.ToRestaurant(&row.Restaurant[0])
		if err != nil {
			return nil, fmt.Errorf("map ranked restaurant: %w", err)
		}
		for j := range row.Ratings {
			rest.AddRating(schema.ToRating(&row.Ratings[j]))
		}

		out = append(out, domrest.Ranked{Restaurant: rest, AverageStars: row.Average})
	}
	return out, nil
}
