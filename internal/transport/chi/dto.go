package chi

import (
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeNotModified      = "not_modified"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type addressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type restaurantRequest struct {
	Name    string     `json:"name"`
	Cuisine string     `json:"cuisine"`
	Address addressDTO `json:"address"`
}

type cuisineRequest struct {
	Cuisine string `json:"cuisine"`
}

type ratingRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

type restaurantResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Cuisine string           `json:"cuisine"`
	Address addressDTO       `json:"address"`
	Ratings []ratingResponse `json:"ratings,omitempty"`
}

type rankedResponse struct {
	Restaurant   restaurantResponse `json:"restaurant"`
	AverageStars float64            `json:"average_stars"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type deleteResponse struct {
	RestaurantsRemoved int64 `json:"restaurants_removed"`
	RatingsRemoved     int64 `json:"ratings_removed"`
}

// toDomain validates the request into a new restaurant.
func (req *restaurantRequest) toDomain() (domrest.Restaurant, error) {
	c, err := domrest.ParseCuisine(req.Cuisine)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	a := req.Address
	addr, err := domrest.NewAddress(a.Street, a.Number, a.City, a.State, a.PostalCode)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	return domrest.New(req.Name, c, addr)
}

func restaurantToDTO(r *domrest.Restaurant) restaurantResponse {
	a := r.Address()
	resp := restaurantResponse{
		ID:      r.ID(),
		Name:    r.Name(),
		Cuisine: r.Cuisine().String(),
		Address: addressDTO{
			Street:     a.Street(),
			Number:     a.Number(),
			City:       a.City(),
			State:      a.State(),
			PostalCode: a.PostalCode(),
		},
	}
	for _, rt := range r.Ratings() {
		resp.Ratings = append(resp.Ratings, ratingResponse{Stars: rt.Stars(), Comment: rt.Comment()})
	}
	return resp
}

func restaurantsToDTO(rs []domrest.Restaurant) listResponse[restaurantResponse] {
	items := make([]restaurantResponse, len(rs))
	for i := range rs {
		items[i] = restaurantToDTO(&rs[i])
	}
	return listResponse[restaurantResponse]{Items: items}
}

func rankedToDTO(ranked []domrest.Ranked) listResponse[rankedResponse] {
	items := make([]rankedResponse, len(ranked))
	for i := range ranked {
		items[i] = rankedResponse{
			Restaurant:   restaurantToDTO(&ranked[i].Restaurant),
			AverageStars: ranked[i].AverageStars,
		}
	}
	return listResponse[rankedResponse]{Items: items}
}
