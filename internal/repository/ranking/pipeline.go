// Package ranking computes the top restaurants by average star rating.
//
// Both strategies run the same grouping prefix over the ratings collection,
// so they agree on membership and order. TwoPhase resolves restaurants with
// follow-up reads; Lookup joins them inside the aggregation.
package ranking

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// store is the consumer interface for collection handles (ISP).
type store interface {
	Collection(name string) db.Collection
}

// averagesPipeline groups ratings by restaurant, averages their stars and
// keeps the best limit groups. Equal averages are ordered by restaurant id
// ascending, since $sort alone does not order duplicates deterministically.
func averagesPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: schema.FieldID, Value: "$" + schema.FieldRestaurantID},
			{Key: schema.FieldAverage, Value: bson.D{{Key: "$avg", Value: "$" + schema.FieldStars}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: schema.FieldAverage, Value: -1},
			{Key: schema.FieldID, Value: 1},
		}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

// lookupStages joins each group with its restaurant and its ratings.
func lookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: schema.RestaurantsCollection},
			{Key: "localField", Value: schema.FieldID},
			{Key: "foreignField", Value: schema.FieldID},
			{Key: "as", Value: schema.FieldRestaurant},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: schema.RatingsCollection},
			{Key: "localField", Value: schema.FieldID},
			{Key: "foreignField", Value: schema.FieldRestaurantID},
			{Key: "as", Value: schema.FieldRatings},
		}}},
	}
}

func aggregate(ctx context.Context, ratings db.Collection, pipeline mongo.Pipeline) ([]schema.RankRow, error) {
	cur, err := ratings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	rows, err := db.DecodeAll[schema.RankRow](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	return rows, nil
}
