package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
)

const maxBodyBytes = 1 << 20

// restaurantService is the consumer interface for the catalog use cases (ISP).
type restaurantService interface {
	Create(ctx context.Context, r *domrest.Restaurant) (domrest.Restaurant, error)
	List(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error)
	Get(ctx context.Context, id string) (domrest.Restaurant, error)
	Replace(ctx context.Context, r *domrest.Restaurant) error
	ChangeCuisine(ctx context.Context, id string, c domrest.Cuisine) error
	SearchByName(ctx context.Context, text string) ([]domrest.Restaurant, error)
	SearchText(ctx context.Context, text string) ([]domrest.Restaurant, error)
	Rate(ctx context.Context, id string, rating domrest.Rating) error
	Top(ctx context.Context, strategy string) ([]domrest.Ranked, error)
	Remove(ctx context.Context, id string) (domrest.DeleteResult, error)
}

type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the restaurant catalog over JSON HTTP.
type Server struct {
	restaurants   restaurantService
	health        healthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(restaurants restaurantService, health healthService, logger *zap.Logger) *Server {
	s := &Server{
		restaurants: restaurants,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNotModified, http.StatusBadRequest, codeNotModified),
		sentinelHandler(domain.ErrInvalidRestaurant, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidAddress, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRating, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownCuisine, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, codeBadRequest),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/restaurants", func(r chi.Router) {
		r.Post("/", s.CreateRestaurant)
		r.Get("/", s.ListRestaurants)
		r.Get("/search", s.SearchByName)
		r.Get("/search/text", s.SearchText)
		r.Get("/top", s.TopRestaurants)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRestaurant)
			r.Put("/", s.ReplaceRestaurant)
			r.Delete("/", s.DeleteRestaurant)
			r.Patch("/cuisine", s.ChangeCuisine)
			r.Post("/ratings", s.RateRestaurant)
		})
	})
}

// Handler returns a router serving Routes with the given middlewares.
func (s *Server) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})
	s.Routes(r)
	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// decodeBody reads a size-limited JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrNotModified,
		domain.ErrUnknownCuisine,
		domain.ErrInvalidRestaurant,
		domain.ErrInvalidAddress,
		domain.ErrInvalidRating,
		domain.ErrInvalidID,
		domain.ErrInvalidArgument,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
