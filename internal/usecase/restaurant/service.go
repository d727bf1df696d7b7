package restaurant

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Service applies the catalog rules on top of the repository: existence
// checks before writes, "nothing changed" signalling and ranking strategy
// selection.
type Service struct {
	repo            Repository
	deleter         Deleter
	rankers         map[domrest.RankStrategy]Ranker
	defaultStrategy domrest.RankStrategy
}

// New creates a restaurant service. The default strategy must be one of the
// registered rankers.
func New(
	repo Repository, deleter Deleter,
	rankers map[domrest.RankStrategy]Ranker, defaultStrategy domrest.RankStrategy,
) (*Service, error) {
	if _, ok := rankers[defaultStrategy]; !ok {
		return nil, fmt.Errorf("default ranking strategy %q not registered: %w", defaultStrategy, domain.ErrInvalidArgument)
	}
	return &Service{
		repo:            repo,
		deleter:         deleter,
		rankers:         rankers,
		defaultStrategy: defaultStrategy,
	}, nil
}

// Create stores a new restaurant and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, r *domrest.Restaurant) (domrest.Restaurant, error) {
	if err := r.Validate(); err != nil {
		return domrest.Restaurant{}, err
	}
	id, err := s.repo.Insert(ctx, r)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return r.WithID(id), nil
}

// List streams every restaurant.
func (s *Service) List(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error) {
	seq, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return seq, nil
}

// Get returns one restaurant.
func (s *Service) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return r, nil
}

// Replace overwrites a restaurant. Returns domain.ErrNotFound when it does not
// exist and domain.ErrNotModified when the stored document did not change.
func (s *Service) Replace(ctx context.Context, r *domrest.Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, r.ID()); err != nil {
		return fmt.Errorf("replace restaurant: %w", err)
	}

	ok, err := s.repo.ReplaceFull(ctx, r)
	if err != nil {
		return fmt.Errorf("replace restaurant: %w", err)
	}
	if !ok {
		return fmt.Errorf("replace restaurant %s: %w", r.ID(), domain.ErrNotModified)
	}
	return nil
}

// ChangeCuisine updates only the cuisine, with the same rules as Replace.
func (s *Service) ChangeCuisine(ctx context.Context, id string, c domrest.Cuisine) error {
	if !c.Valid() {
		return fmt.Errorf("cuisine %q: %w", c, domain.ErrUnknownCuisine)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("change cuisine: %w", err)
	}

	ok, err := s.repo.UpdateCuisine(ctx, id, c)
	if err != nil {
		return fmt.Errorf("change cuisine: %w", err)
	}
	if !ok {
		return fmt.Errorf("change cuisine of %s: %w", id, domain.ErrNotModified)
	}
	return nil
}

// SearchByName finds restaurants whose name contains text, ignoring case.
func (s *Service) SearchByName(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("name query is required: %w", domain.ErrInvalidArgument)
	}
	rs, err := s.repo.FindByNameSubstring(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}
	return rs, nil
}

// SearchText runs a full-text query over restaurant names.
func (s *Service) SearchText(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text query is required: %w", domain.ErrInvalidArgument)
	}
	rs, err := s.repo.FindByText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}
	return rs, nil
}

// Rate records a rating for an existing restaurant.
func (s *Service) Rate(ctx context.Context, id string, rating domrest.Rating) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("rate restaurant: %w", err)
	}
	if err := s.repo.InsertRating(ctx, id, rating); err != nil {
		return fmt.Errorf("rate restaurant: %w", err)
	}
	return nil
}

// Top ranks restaurants with the named strategy, or the default when empty.
func (s *Service) Top(ctx context.Context, strategy string) ([]domrest.Ranked, error) {
	st := s.defaultStrategy
	if strategy != "" {
		parsed, err := domrest.ParseRankStrategy(strategy)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	ranker, ok := s.rankers[st]
	if !ok {
		return nil, fmt.Errorf("ranking strategy %q not available: %w", st, domain.ErrInvalidArgument)
	}
	ranked, err := ranker.Top(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank restaurants (%s): %w", st, err)
	}
	return ranked, nil
}

// Remove deletes a restaurant and its ratings.
func (s *Service) Remove(ctx context.Context, id string) (domrest.DeleteResult, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domrest.DeleteResult{}, fmt.Errorf("remove restaurant: %w", err)
	}
	res, err := s.deleter.Delete(ctx, id)
	if err != nil {
		return res, fmt.Errorf("remove restaurant: %w", err)
	}
	return res, nil
}
