package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/logger"
)

// CreateRestaurant handles POST /restaurants.
func (s *Server) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	rest, err := req.toDomain()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	created, err := s.restaurants.Create(r.Context(), &rest)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/restaurants/"+created.ID())
	writeJSON(w, http.StatusCreated, restaurantToDTO(&created))
}

// ListRestaurants handles GET /restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	seq, err := s.restaurants.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]restaurantResponse, 0)
	for rest, err := range seq {
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		items = append(items, restaurantToDTO(&rest))
	}

	writeJSON(w, http.StatusOK, listResponse[restaurantResponse]{Items: items})
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := s.restaurants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantToDTO(&rest))
}

// ReplaceRestaurant handles PUT /restaurants/{id}.
func (s *Server) ReplaceRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	rest, err := req.toDomain()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	rest = rest.WithID(chi.URLParam(r, "id"))

	if err := s.restaurants.Replace(r.Context(), &rest); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantToDTO(&rest))
}

// ChangeCuisine handles PATCH /restaurants/{id}/cuisine.
func (s *Server) ChangeCuisine(w http.ResponseWriter, r *http.Request) {
	var req cuisineRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	c, err := domrest.ParseCuisine(req.Cuisine)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.restaurants.ChangeCuisine(r.Context(), chi.URLParam(r, "id"), c); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchByName handles GET /restaurants/search?name=.
func (s *Server) SearchByName(w http.ResponseWriter, r *http.Request) {
	rs, err := s.restaurants.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantsToDTO(rs))
}

// SearchText handles GET /restaurants/search/text?q=.
func (s *Server) SearchText(w http.ResponseWriter, r *http.Request) {
	rs, err := s.restaurants.SearchText(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantsToDTO(rs))
}

// RateRestaurant handles POST /restaurants/{id}/ratings.
func (s *Server) RateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	rating, err := domrest.NewRating(req.Stars, req.Comment)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.restaurants.Rate(r.Context(), chi.URLParam(r, "id"), rating); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ratingResponse{Stars: rating.Stars(), Comment: rating.Comment()})
}

// TopRestaurants handles GET /restaurants/top?strategy=.
func (s *Server) TopRestaurants(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	ctx := logger.With(r.Context(), zap.String("strategy", strategy))

	ranked, err := s.restaurants.Top(ctx, strategy)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankedToDTO(ranked))
}

// DeleteRestaurant handles DELETE /restaurants/{id}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	res, err := s.restaurants.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		RestaurantsRemoved: res.RestaurantsRemoved,
		RatingsRemoved:     res.RatingsRemoved,
	})
}
