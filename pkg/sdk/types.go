package restodex

import (
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// RankStrategy names a ranking implementation.
type RankStrategy string

// Ranking strategies.
const (
	RankTwoPhase RankStrategy = RankStrategy(domrest.RankTwoPhase)
	RankLookup   RankStrategy = RankStrategy(domrest.RankLookup)
)

// Address is a restaurant's postal address. Every field is required.
type Address struct {
	Street     string
	Number     string
	City       string
	State      string
	PostalCode string
}

// Rating is a star rating between 1 and 5.
type Rating struct {
	Stars   int
	Comment string
}

// Restaurant is a catalog entry. ID is empty until created; Ratings is only
// filled by Top.
type Restaurant struct {
	ID      string
	Name    string
	Cuisine string // brazilian, japanese, italian, arab, chinese, mexican
	Address Address
	Ratings []Rating
}

// Ranked pairs a restaurant with its average stars.
type Ranked struct {
	Restaurant   Restaurant
	AverageStars float64
}

// DeleteResult reports what Remove deleted.
type DeleteResult struct {
	RestaurantsRemoved int64
	RatingsRemoved     int64
}

// Partial reports that ratings were removed but the restaurant was not.
func (d DeleteResult) Partial() bool {
	return d.RestaurantsRemoved == 0 && d.RatingsRemoved > 0
}

func toDomain(r *Restaurant) (domrest.Restaurant, error) {
	c, err := domrest.ParseCuisine(r.Cuisine)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	a := r.Address
	addr, err := domrest.NewAddress(a.Street, a.Number, a.City, a.State, a.PostalCode)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	rest, err := domrest.New(r.Name, c, addr)
	if err != nil {
		return domrest.Restaurant{}, err
	}
	return rest.WithID(r.ID), nil
}

func fromDomain(r *domrest.Restaurant) Restaurant {
	a := r.Address()
	out := Restaurant{
		ID:      r.ID(),
		Name:    r.Name(),
		Cuisine: r.Cuisine().String(),
		Address: Address{
			Street:     a.Street(),
			Number:     a.Number(),
			City:       a.City(),
			State:      a.State(),
			PostalCode: a.PostalCode(),
		},
	}
	for _, rt := range r.Ratings() {
		out.Ratings = append(out.Ratings, Rating{Stars: rt.Stars(), Comment: rt.Comment()})
	}
	return out
}

func fromDomainList(rs []domrest.Restaurant) []Restaurant {
	out := make([]Restaurant, len(rs))
	for i := range rs {
		out[i] = fromDomain(&rs[i])
	}
	return out
}
