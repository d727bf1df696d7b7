package restaurant

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kailas-cloud/restodex/internal/db"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// Deleter removes a restaurant together with its ratings.
//
// The two deletes are independent operations with no transaction. Ratings go
// first, so a failure in between leaves a restaurant with no ratings rather
// than ratings pointing at nothing. The partial outcome is visible in the
// returned DeleteResult.
type Deleter struct {
	restaurants db.Collection
	ratings     db.Collection
}

// NewDeleter creates a cascade deleter over the same collections as Repo.
func NewDeleter(s store) *Deleter {
	return &Deleter{
		restaurants: s.Collection(schema.RestaurantsCollection),
		ratings:     s.Collection(schema.RatingsCollection),
	}
}

// Delete removes every rating referencing id, then the restaurant itself.
// On error the result still carries whatever was removed before the failure.
func (d *Deleter) Delete(ctx context.Context, id string) (domrest.DeleteResult, error) {
	var res domrest.DeleteResult

	oid, err := schema.ParseID(id)
	if err != nil {
		return res, nil
	}

	n, err := d.ratings.DeleteMany(ctx, bson.M{schema.FieldRestaurantID: oid})
	if err != nil {
		return res, fmt.Errorf("delete ratings of %s: %w", id, err)
	}
	res.RatingsRemoved = n

	n, err = d.restaurants.DeleteOne(ctx, bson.M{schema.FieldID: oid})
	if err != nil {
		return res, fmt.Errorf("delete restaurant %s after removing %d ratings: %w", id, res.RatingsRemoved, err)
	}
	res.RestaurantsRemoved = n
	return res, nil
}
