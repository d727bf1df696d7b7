package restodex

import "github.com/kailas-cloud/restodex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrNotModified       = domain.ErrNotModified
	ErrInvalidRestaurant = domain.ErrInvalidRestaurant
	ErrInvalidAddress    = domain.ErrInvalidAddress
	ErrInvalidRating     = domain.ErrInvalidRating
	ErrUnknownCuisine    = domain.ErrUnknownCuisine
	ErrInvalidID         = domain.ErrInvalidID
	ErrInvalidArgument   = domain.ErrInvalidArgument
)
