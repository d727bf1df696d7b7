package schema

import "go.mongodb.org/mongo-driver/bson/primitive"

// Fields produced by the ranking pipeline.
const (
	FieldAverage    = "average"
	FieldRestaurant = "restaurant"
	FieldRatings    = "ratings"
)

// RankRow is one row of the ranking aggregation. Restaurant and Ratings are
// only populated by the join variant.
type RankRow struct {
	RestaurantID primitive.ObjectID `bson:"_id"`
	Average      float64            `bson:"average"`
	Restaurant   []RestaurantDoc    `bson:"restaurant,omitempty"`
	Ratings      []RatingDoc        `bson:"ratings,omitempty"`
}
