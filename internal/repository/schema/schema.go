// Package schema maps between stored MongoDB documents and domain entities.
//
// Conversion is explicit per entity. Decoding into these structs ignores any
// stored field they do not declare, so documents written by newer versions stay
// readable.
package schema

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Collection names.
const (
	RestaurantsCollection = "restaurants"
	RatingsCollection     = "ratings"
)

// Document field names used in filters, updates and pipelines.
const (
	FieldID           = "_id"
	FieldName         = "name"
	FieldCuisine      = "cuisine"
	FieldRestaurantID = "restaurantId"
	FieldStars        = "stars"
)

// AddressDoc is the embedded address sub-document.
type AddressDoc struct {
	Street     string `bson:"street"`
	Number     string `bson:"number"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postalCode"`
}

// RestaurantDoc is the shape of a document in the restaurants collection.
type RestaurantDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Cuisine int32              `bson:"cuisine"`
	Address AddressDoc         `bson:"address"`
}

// RatingDoc is the shape of a document in the ratings collection.
type RatingDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID `bson:"restaurantId"`
	Stars        int32              `bson:"stars"`
	Comment      string             `bson:"comment"`
}

// FromRestaurant converts a domain restaurant into a document. An empty or
// malformed domain ID leaves _id unset.
func FromRestaurant(r *restaurant.Restaurant) (RestaurantDoc, error) {
	code, err := CuisineCode(r.Cuisine())
	if err != nil {
		return RestaurantDoc{}, err
	}
	doc := RestaurantDoc{
		Name:    r.Name(),
		Cuisine: code,
		Address: fromAddress(r.Address()),
	}
	if r.ID() != "" {
		if oid, err := primitive.ObjectIDFromHex(r.ID()); err == nil {
			doc.ID = oid
		}
	}
	return doc, nil
}

// ToRestaurant converts a stored document into a domain restaurant.
// Unknown cuisine codes are a conversion error.
func ToRestaurant(doc *RestaurantDoc) (restaurant.Restaurant, error) {
	c, err := CuisineFromCode(doc.Cuisine)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("restaurant %s: %w", doc.ID.Hex(), err)
	}
	return restaurant.Reconstruct(doc.ID.Hex(), doc.Name, c, toAddress(doc.Address)), nil
}

// FromRating converts a rating for the given restaurant into a document.
func FromRating(restaurantID primitive.ObjectID, r restaurant.Rating) RatingDoc {
	return RatingDoc{
		RestaurantID: restaurantID,
		Stars:        int32(r.Stars()), //nolint:gosec // stars are bounded to [1,5]
		Comment:      r.Comment(),
	}
}

// ToRating converts a stored rating document into a domain rating.
func ToRating(doc *RatingDoc) restaurant.Rating {
	return restaurant.ReconstructRating(doc.RestaurantID.Hex(), int(doc.Stars), doc.Comment)
}

// ParseID converts a hex identifier into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, domain.ErrInvalidID)
	}
	return oid, nil
}

func fromAddress(a restaurant.Address) AddressDoc {
	return AddressDoc{
		Street:     a.Street(),
		Number:     a.Number(),
		City:       a.City(),
		State:      a.State(),
		PostalCode: a.PostalCode(),
	}
}

func toAddress(d AddressDoc) restaurant.Address {
	return restaurant.ReconstructAddress(d.Street, d.Number, d.City, d.State, d.PostalCode)
}
