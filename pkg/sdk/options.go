package restodex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	uri      string
	database string

	connectTimeout   time.Duration
	readinessTimeout time.Duration
	skipIndexes      bool

	rankStrategy RankStrategy

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMongo sets the MongoDB connection string and database name.
func WithMongo(uri, database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.uri = uri
		c.database = database
	})
}

// WithConnectTimeout bounds connection establishment and server selection.
func WithConnectTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.connectTimeout = d
	})
}

// WithReadinessTimeout bounds the initial readiness wait in New.
// Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithoutIndexBootstrap skips index creation in New, for deployments where
// indexes are managed out of band.
func WithoutIndexBootstrap() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipIndexes = true
	})
}

// WithRankingStrategy sets the strategy Top uses when none is given.
// Default: RankTwoPhase.
func WithRankingStrategy(s RankStrategy) Option {
	return optionFunc(func(c *clientConfig) {
		c.rankStrategy = s
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
