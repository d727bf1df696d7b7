package restaurant

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Restaurant is the restaurant aggregate. Ratings are not part of the stored
// document and are only present when explicitly hydrated.
type Restaurant struct {
	id      string
	name    string
	cuisine Cuisine
	address Address
	ratings []Rating
}

// New validates and creates a Restaurant without an identifier.
// The store assigns the identifier on insert.
func New(name string, cuisine Cuisine, address Address) (Restaurant, error) {
	r := Restaurant{name: name, cuisine: cuisine, address: address}
	if err := r.Validate(); err != nil {
		return Restaurant{}, err
	}
	return r, nil
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(id, name string, cuisine Cuisine, address Address) Restaurant {
	return Restaurant{id: id, name: name, cuisine: cuisine, address: address}
}

// Validate checks the invariants required before persisting.
func (r *Restaurant) Validate() error {
	if strings.TrimSpace(r.name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidRestaurant)
	}
	if !r.cuisine.Valid() {
		return fmt.Errorf("cuisine %q: %w: %w", r.cuisine, domain.ErrInvalidRestaurant, domain.ErrUnknownCuisine)
	}
	if r.address.IsZero() {
		return fmt.Errorf("address is required: %w", domain.ErrInvalidRestaurant)
	}
	return nil
}

// ID returns the store-assigned identifier (empty before insert).
func (r *Restaurant) ID() string { return r.id }

// Name returns the restaurant name.
func (r *Restaurant) Name() string { return r.name }

// Cuisine returns the cuisine category.
func (r *Restaurant) Cuisine() Cuisine { return r.cuisine }

// Address returns the postal address.
func (r *Restaurant) Address() Address { return r.address }

// Ratings returns hydrated ratings in the order they were attached.
func (r *Restaurant) Ratings() []Rating { return r.ratings }

// WithID returns a copy carrying the given identifier.
func (r *Restaurant) WithID(id string) Restaurant {
	c := *r
	c.id = id
	return c
}

// AddRating attaches a hydrated rating.
func (r *Restaurant) AddRating(rt Rating) { r.ratings = append(r.ratings, rt) }

// Ranked pairs a restaurant with its average star count.
type Ranked struct {
	Restaurant   Restaurant
	AverageStars float64
}

// DeleteResult reports what a cascade delete removed.
type DeleteResult struct {
	RestaurantsRemoved int64
	RatingsRemoved     int64
}

// Partial reports that ratings were removed but the restaurant was not,
// which happens when the second step of the cascade fails or races.
func (d DeleteResult) Partial() bool {
	return d.RestaurantsRemoved == 0 && d.RatingsRemoved > 0
}
