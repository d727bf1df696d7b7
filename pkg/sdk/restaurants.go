package restodex

import (
	"context"
	"time"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// RestaurantService provides catalog operations.
type RestaurantService struct {
	uc  restaurantUseCase
	obs *observer
}

// Create validates and stores a restaurant. The ID field of r is ignored.
func (s *RestaurantService) Create(ctx context.Context, r Restaurant) (Restaurant, error) {
	start := time.Now()
	created, err := s.create(ctx, &r)
	s.obs.observe("restaurant.create", start, err)
	return created, err
}

func (s *RestaurantService) create(ctx context.Context, r *Restaurant) (Restaurant, error) {
	r.ID = ""
	rest, err := toDomain(r)
	if err != nil {
		return Restaurant{}, err
	}
	created, err := s.uc.Create(ctx, &rest)
	if err != nil {
		return Restaurant{}, err
	}
	return fromDomain(&created), nil
}

// List returns every restaurant in store order.
func (s *RestaurantService) List(ctx context.Context) ([]Restaurant, error) {
	start := time.Now()
	list, err := s.list(ctx)
	s.obs.observe("restaurant.list", start, err)
	return list, err
}

func (s *RestaurantService) list(ctx context.Context) ([]Restaurant, error) {
	seq, err := s.uc.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Restaurant
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, fromDomain(&r))
	}
	return out, nil
}

// Get returns a restaurant by id or ErrNotFound.
func (s *RestaurantService) Get(ctx context.Context, id string) (Restaurant, error) {
	start := time.Now()
	r, err := s.uc.Get(ctx, id)
	s.obs.observe("restaurant.get", start, err)
	if err != nil {
		return Restaurant{}, err
	}
	return fromDomain(&r), nil
}

// Replace overwrites every field of an existing restaurant. It returns
// ErrNotModified when the stored document already matches.
func (s *RestaurantService) Replace(ctx context.Context, r Restaurant) error {
	start := time.Now()
	err := s.replace(ctx, &r)
	s.obs.observe("restaurant.replace", start, err)
	return err
}

func (s *RestaurantService) replace(ctx context.Context, r *Restaurant) error {
	rest, err := toDomain(r)
	if err != nil {
		return err
	}
	return s.uc.Replace(ctx, &rest)
}

// ChangeCuisine updates only the cuisine of a restaurant.
func (s *RestaurantService) ChangeCuisine(ctx context.Context, id, cuisine string) error {
	start := time.Now()
	err := s.changeCuisine(ctx, id, cuisine)
	s.obs.observe("restaurant.change_cuisine", start, err)
	return err
}

func (s *RestaurantService) changeCuisine(ctx context.Context, id, cuisine string) error {
	c, err := domrest.ParseCuisine(cuisine)
	if err != nil {
		return err
	}
	return s.uc.ChangeCuisine(ctx, id, c)
}

// SearchByName returns restaurants whose name contains text, ignoring case.
func (s *RestaurantService) SearchByName(ctx context.Context, text string) ([]Restaurant, error) {
	start := time.Now()
	rs, err := s.uc.SearchByName(ctx, text)
	s.obs.observe("restaurant.search_name", start, err)
	if err != nil {
		return nil, err
	}
	return fromDomainList(rs), nil
}

// SearchText runs a full-text query over names, most relevant first.
func (s *RestaurantService) SearchText(ctx context.Context, text string) ([]Restaurant, error) {
	start := time.Now()
	rs, err := s.uc.SearchText(ctx, text)
	s.obs.observe("restaurant.search_text", start, err)
	if err != nil {
		return nil, err
	}
	return fromDomainList(rs), nil
}

// Rate records a rating for an existing restaurant.
func (s *RestaurantService) Rate(ctx context.Context, id string, r Rating) error {
	start := time.Now()
	err := s.rate(ctx, id, r)
	s.obs.observe("restaurant.rate", start, err)
	return err
}

func (s *RestaurantService) rate(ctx context.Context, id string, r Rating) error {
	rating, err := domrest.NewRating(r.Stars, r.Comment)
	if err != nil {
		return err
	}
	return s.uc.Rate(ctx, id, rating)
}

// Top returns the best rated restaurants with their ratings attached.
// An empty strategy selects the client default.
func (s *RestaurantService) Top(ctx context.Context, strategy RankStrategy) ([]Ranked, error) {
	start := time.Now()
	ranked, err := s.uc.Top(ctx, string(strategy))
	s.obs.observe("restaurant.top", start, err)
	if err != nil {
		return nil, err
	}
	out := make([]Ranked, len(ranked))
	for i := range ranked {
		out[i] = Ranked{
			Restaurant:   fromDomain(&ranked[i].Restaurant),
			AverageStars: ranked[i].AverageStars,
		}
	}
	return out, nil
}

// Remove deletes a restaurant and its ratings. On a partial failure the
// returned result still reports the ratings removed.
func (s *RestaurantService) Remove(ctx context.Context, id string) (DeleteResult, error) {
	start := time.Now()
	res, err := s.uc.Remove(ctx, id)
	s.obs.observe("restaurant.remove", start, err)
	return DeleteResult{
		RestaurantsRemoved: res.RestaurantsRemoved,
		RatingsRemoved:     res.RatingsRemoved,
	}, err
}
