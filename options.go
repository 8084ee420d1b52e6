package bootgo

import (
	"log/slog"
)

type options struct {
	replications int
	seed         int64
	hasSeed      bool
	workers      int
	metrics      MetricsCollector
	logger       *Logger
}

// Option configures a bootstrap run.
type Option func(*options)

// WithReplications sets the number of bootstrap replications B.
// Defaults to 1000. Interval accuracy improves with B; values of
// 1000-10000 are typical.
func WithReplications(b int) Option {
	return func(o *options) {
		o.replications = b
	}
}

// WithSeed fixes the random stream of the run for reproducibility.
// Two runs with identical sample, estimator, replication count, and seed
// produce identical distributions, regardless of worker count.
//
// Without WithSeed, the run seeds itself from the wall clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithWorkers sets the number of concurrent replication workers.
// Replications are independent, so runs scale with available cores; each
// replication still owns a private random stream derived from the run seed.
//
// If n <= 1, replications run sequentially (default).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bootgo.BasicMetricsCollector{}
//	dist, _ := bootgo.Run(ctx, s, est, bootgo.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for runs.
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

func applyOptions(optFns []Option) options {
	o := options{
		replications: 1000,
		workers:      1,
		metrics:      NoopMetricsCollector{},
		logger:       NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
