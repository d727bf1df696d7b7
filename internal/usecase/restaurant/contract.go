package restaurant

import (
	"context"
	"iter"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Repository defines the storage contract for restaurants and their ratings.
type Repository interface {
	Insert(ctx context.Context, r *domrest.Restaurant) (string, error)
	All(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error)
	GetByID(ctx context.Context, id string) (domrest.Restaurant, error)
	ReplaceFull(ctx context.Context, r *domrest.Restaurant) (bool, error)
	UpdateCuisine(ctx context.Context, id string, c domrest.Cuisine) (bool, error)
	FindByNameSubstring(ctx context.Context, text string) ([]domrest.Restaurant, error)
	FindByText(ctx context.Context, text string) ([]domrest.Restaurant, error)
	InsertRating(ctx context.Context, restaurantID string, rating domrest.Rating) error
}

// Deleter removes a restaurant and everything that references it.
type Deleter interface {
	Delete(ctx context.Context, id string) (domrest.DeleteResult, error)
}

// Ranker computes the top restaurants by average rating.
type Ranker interface {
	Top(ctx context.Context) ([]domrest.Ranked, error)
}
