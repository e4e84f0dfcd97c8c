package hugearray

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/hugearray/resource"
)

// Config is the resolved configuration shared by every structure in this
// module. Constructors take ...Option and resolve them with NewConfig.
type Config struct {
	// PageSize is the number of elements per page. Zero selects the default
	// for the element width (see paged.DefaultPageSize).
	PageSize int

	// Concurrency is the number of goroutines a parallel fill may use.
	Concurrency int

	// InitialCapacity pre-sizes growable structures.
	InitialCapacity uint64

	Logger    *Logger
	Metrics   MetricsCollector
	Resources *resource.Controller
}

// Option configures construction of a structure.
type Option func(*Config)

// WithPageSize sets the number of elements per page. It must be a power of
// two; constructors reject other values with ErrInvalidPageSize.
func WithPageSize(pageSize int) Option {
	return func(c *Config) {
		c.PageSize = pageSize
	}
}

// WithConcurrency sets the number of goroutines used by parallel fills.
//
// If concurrency is 0, runtime.GOMAXPROCS(0) is used.
func WithConcurrency(concurrency int) Option {
	return func(c *Config) {
		c.Concurrency = concurrency
	}
}

// WithInitialCapacity pre-sizes growable structures so the first writes do
// not have to grow the page table.
func WithInitialCapacity(capacity uint64) Option {
	return func(c *Config) {
		c.InitialCapacity = capacity
	}
}

// WithMetricsCollector configures a metrics collector for fills, growth,
// builds and allocations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hugearray.BasicMetricsCollector{}
//	bs, _ := bitset.NewGrowing(hugearray.WithMetricsCollector(metrics))
//	// ... use bs ...
//	stats := metrics.GetStats()
//	fmt.Printf("growth won: %d, lost: %d\n", stats.GrowthWon, stats.GrowthLost)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(c *Config) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		c.Metrics = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hugearray.NewJSONLogger(slog.LevelDebug)
//	arr, _ := fill.New(ctx, n, fill.Identity[int64](), hugearray.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(c *Config) {
		if logger == nil {
			logger = NoopLogger()
		}
		c.Logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(c *Config) {
		c.Logger = NewTextLogger(level)
	}
}

// WithResourceController makes every page allocation reserve its bytes with
// rc first. Allocations beyond the budget fail with ErrMemoryLimitExceeded.
func WithResourceController(rc *resource.Controller) Option {
	return func(c *Config) {
		c.Resources = rc
	}
}

// NewConfig applies opts over the defaults and validates the result.
// Page size validation needs the element width and is left to the paged
// package.
func NewConfig(opts ...Option) (Config, error) {
	c := Config{
		Metrics: NoopMetricsCollector{},
		Logger:  NoopLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}

	if c.Concurrency < 0 {
		return Config{}, ErrInvalidConcurrency
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if err := CheckCapacity(c.InitialCapacity); err != nil {
		return Config{}, err
	}

	return c, nil
}
