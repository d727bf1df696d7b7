package restodex

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	dbMongo "github.com/kailas-cloud/restodex/internal/db/mongo"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/repository/ranking"
	restaurantrepo "github.com/kailas-cloud/restodex/internal/repository/restaurant"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	restaurantuc "github.com/kailas-cloud/restodex/internal/usecase/restaurant"
)

const defaultReadinessTimeout = 10 * time.Second

// restaurantUseCase is the slice of the restaurant service the SDK calls.
type restaurantUseCase interface {
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

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the main entry point for the restodex SDK.
type Client struct {
	store       *dbMongo.Store
	restaurants *RestaurantService
	health      healthUseCase
	obs         *observer
}

// New creates a restodex client connected to MongoDB and waits until the
// server answers pings. Indexes are created unless WithoutIndexBootstrap is
// given.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
		rankStrategy:     RankTwoPhase,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.uri == "" || cfg.database == "" {
		return nil, errors.New("restodex: mongo uri and database are required, use WithMongo")
	}
	strategy, err := domrest.ParseRankStrategy(string(cfg.rankStrategy))
	if err != nil {
		return nil, fmt.Errorf("restodex: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:            cfg.uri,
		Database:       cfg.database,
		ConnectTimeout: cfg.connectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("restodex: %w", err)
	}
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("restodex: mongodb not ready: %w", err)
	}

	repo := restaurantrepo.New(store)
	if !cfg.skipIndexes {
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("restodex: ensure indexes: %w", err)
		}
	}

	rankers := map[domrest.RankStrategy]restaurantuc.Ranker{
		domrest.RankTwoPhase: ranking.NewTwoPhase(store, repo),
		domrest.RankLookup:   ranking.NewLookup(store),
	}
	restSvc, err := restaurantuc.New(repo, restaurantrepo.NewDeleter(store), rankers, strategy)
	if err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("restodex: %w", err)
	}

	c := wireClient(restSvc, healthuc.New(store).WithTimeout(cfg.connectTimeout), obs)
	c.store = store
	return c, nil
}

// wireClient assembles a Client from use cases. Tests call it with mocks.
func wireClient(restaurants restaurantUseCase, health healthUseCase, obs *observer) *Client {
	return &Client{
		restaurants: &RestaurantService{uc: restaurants, obs: obs},
		health:      health,
		obs:         obs,
	}
}

// Restaurants returns the restaurant catalog service.
func (c *Client) Restaurants() *RestaurantService {
	return c.restaurants
}

// Ping checks the MongoDB connection.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	var err error
	if c.store == nil {
		err = errors.New("restodex: client has no store")
	} else {
		err = c.store.Ping(ctx)
	}
	c.obs.observe("ping", start, err)
	return err
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Close(ctx)
}
