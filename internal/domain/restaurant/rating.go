package restaurant

import (
	"fmt"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Star bounds for a rating.
const (
	MinStars = 1
	MaxStars = 5
)

// Rating is an immutable star rating recorded against a restaurant.
type Rating struct {
	restaurantID string
	stars        int
	comment      string
}

// NewRating validates and creates a Rating not yet tied to a restaurant.
func NewRating(stars int, comment string) (Rating, error) {
	if stars < MinStars || stars > MaxStars {
		return Rating{}, fmt.Errorf("stars must be between %d and %d, got %d: %w",
			MinStars, MaxStars, stars, domain.ErrInvalidRating)
	}
	return Rating{stars: stars, comment: comment}, nil
}

// ReconstructRating creates a Rating without validation (storage hydration).
func ReconstructRating(restaurantID string, stars int, comment string) Rating {
	return Rating{restaurantID: restaurantID, stars: stars, comment: comment}
}

// RestaurantID returns the referenced restaurant, empty until the rating is stored.
func (r Rating) RestaurantID() string { return r.restaurantID }

// Stars returns the star count.
func (r Rating) Stars() int { return r.stars }

// Comment returns the optional free-text comment.
func (r Rating) Comment() string { return r.comment }
