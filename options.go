package zetascan

import (
	"log/slog"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/internal/block"
	"github.com/okushigue/zetascan/report"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	workers          int
	batchSize        int
	compression      block.Compression
	cacheName        string
	resultsStore     blobstore.BlobStore
	sessionStore     *report.SessionStore
	sampleSize       int
	simulations      int
	seed             int64
}

// Option configures Hunter behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWorkers bounds the scan and simulation fan-out.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithBatchSize sets the zero window size for batch processing.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithCompression selects the cache block compression.
func WithCompression(c block.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCacheName overrides the cache blob name.
func WithCacheName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.cacheName = name
		}
	}
}

// WithResultsStore directs reports and exports to a separate store.
// By default they share the data store.
func WithResultsStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.resultsStore = store
	}
}

// WithSessionStore enables SQLite session recording.
func WithSessionStore(store *report.SessionStore) Option {
	return func(o *options) {
		o.sessionStore = store
	}
}

// WithSampleSize bounds the zero sample used by Monte Carlo studies.
func WithSampleSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleSize = n
		}
	}
}

// WithSimulations sets the Monte Carlo simulation count.
func WithSimulations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.simulations = n
		}
	}
}

// WithSeed fixes the Monte Carlo random seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		compression:      block.ZSTD,
		cacheName:        DefaultCacheName,
		simulations:      0,
		seed:             0,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
