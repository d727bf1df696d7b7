package domain

import "errors"

var (
	// ErrNotFound signals a missing restaurant.
	ErrNotFound = errors.New("not found")
	// ErrNotModified signals an update that matched no document or changed nothing.
	ErrNotModified = errors.New("no document was modified")
	// ErrInvalidRestaurant signals a restaurant that violates its invariants.
	ErrInvalidRestaurant = errors.New("invalid restaurant")
	// ErrInvalidAddress signals an incomplete address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidRating signals a rating outside the allowed star range.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrUnknownCuisine signals a cuisine name or stored code outside the closed set.
	ErrUnknownCuisine = errors.New("unknown cuisine")
	// ErrInvalidID signals an identifier that is not in the store's encoding.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidArgument signals a malformed request parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
