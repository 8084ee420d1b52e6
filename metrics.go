package bootgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter   prometheus.Counter
//	    runHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(replications int, duration time.Duration, err error) {
//	    p.runCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRun is called after each bootstrap run.
	// replications is the configured replication count, duration the total
	// time taken, err nil if successful.
	RecordRun(replications int, duration time.Duration, err error)

	// RecordInterval is called after each interval computation.
	// method is "percentile" or "normal".
	RecordInterval(method string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordInterval(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount          atomic.Int64
	RunErrors         atomic.Int64
	RunTotalNanos     atomic.Int64
	ReplicationsTotal atomic.Int64
	IntervalCount     atomic.Int64
	IntervalErrors    atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(replications int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	b.ReplicationsTotal.Add(int64(replications))
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordInterval implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInterval(method string, duration time.Duration, err error) {
	b.IntervalCount.Add(1)
	if err != nil {
		b.IntervalErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunAvgNanos:       b.getAvgRunNanos(),
		ReplicationsTotal: b.ReplicationsTotal.Load(),
		IntervalCount:     b.IntervalCount.Load(),
		IntervalErrors:    b.IntervalErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	ReplicationsTotal int64
	IntervalCount     int64
	IntervalErrors    int64
}
