// Package bootgo implements the nonparametric bootstrap for Go.
//
// The bootstrap approximates the sampling distribution of a statistic by
// repeatedly resampling the observed data with replacement, re-running a
// point estimator on each resample, and collecting the results. Confidence
// intervals are then read off the empirical distribution (percentile method)
// or built from its standard error around a point estimate computed on the
// original sample (normal approximation).
//
// # Quick Start
//
// Bootstrap the OLS slope of a univariate regression:
//
//	ctx := context.Background()
//	s, err := sample.Univariate(x, y)
//	if err != nil {
//	    panic(err)
//	}
//
//	dist, err := bootgo.Run(ctx, s, regress.SlopeEstimator(0),
//	    bootgo.WithReplications(10000),
//	    bootgo.WithSeed(42),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	ivs, err := dist.PercentileInterval(0.05) // 95% interval
//
// Any function from a sample to a fixed-width statistic can be bootstrapped:
//
//	est := bootgo.EstimatorFunc(func(s *sample.Sample) ([]float64, error) {
//	    fit, err := regress.OLS(s)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return fit.Coefficients(), nil
//	})
//
// # Reproducibility and Parallelism
//
// A run owns its random stream: WithSeed fixes every resample draw, and two
// runs with identical inputs and seed produce identical distributions. With
// WithWorkers(n) replications execute concurrently; each replication derives
// its own sub-seed deterministically from the run seed and replication index,
// so results are identical regardless of worker count.
//
// # Failure Policy
//
// An estimator failure on any replication (for example a singular design
// matrix on a degenerate resample) aborts the whole run and discards the
// partial distribution. Failed replications are never skipped: interval
// validity depends on the distribution holding exactly the configured number
// of replications. The failing replication index is reported via
// ReplicationError.
package bootgo

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bootgo/sample"
)

// Estimator maps a sample to a fixed-width numeric statistic, such as a
// regression coefficient vector or a derived scalar like an average
// treatment effect. Implementations must be pure: no retained state between
// calls, no mutation of the sample. An estimator may fail, e.g. when a
// degenerate resample yields a singular design matrix.
type Estimator interface {
	Estimate(s *sample.Sample) ([]float64, error)
}

// EstimatorFunc adapts a plain function to the Estimator interface.
type EstimatorFunc func(s *sample.Sample) ([]float64, error)

// Estimate implements Estimator.
func (f EstimatorFunc) Estimate(s *sample.Sample) ([]float64, error) {
	return f(s)
}

// Run draws B bootstrap resamples of s, applies est to each, and returns the
// empirical distribution of the statistic in replication order.
//
// Each replication draws len(s) indices uniformly with replacement,
// independent across replications. The sample itself is never mutated.
//
// Errors: ErrEmptySample, ErrNilEstimator, ErrInvalidReplications on bad
// inputs; a *ReplicationError wrapping the estimator's error if any
// replication fails (the run is aborted and no partial distribution is
// returned).
func Run(ctx context.Context, s *sample.Sample, est Estimator, optFns ...Option) (*Distribution, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	dist, err := run(ctx, s, est, opts)

	duration := time.Since(start)
	opts.metrics.RecordRun(opts.replications, duration, err)
	opts.logger.LogRun(ctx, opts.replications, duration, err)
	return dist, err
}

func run(ctx context.Context, s *sample.Sample, est Estimator, opts options) (*Distribution, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySample
	}
	if est == nil {
		return nil, ErrNilEstimator
	}
	if opts.replications < 1 {
		return nil, ErrInvalidReplications
	}

	seed := opts.seed
	if !opts.hasSeed {
		seed = time.Now().UnixNano()
	}

	stats := make([][]float64, opts.replications)
	seeds := replicationSeeds(seed, opts.replications)

	var err error
	if opts.workers > 1 {
		err = runParallel(ctx, s, est, stats, seeds, opts.workers)
	} else {
		err = runSequential(ctx, s, est, stats, seeds)
	}
	if err != nil {
		return nil, err
	}

	return &Distribution{
		stats:   stats,
		width:   len(stats[0]),
		logger:  opts.logger,
		metrics: opts.metrics,
	}, nil
}

// replicationSeeds derives one sub-seed per replication from the run seed.
// The derivation depends only on the seed and the replication index, which
// keeps fixed-seed runs reproducible under any worker count.
func replicationSeeds(seed int64, b int) []int64 {
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, b)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	return seeds
}

// resampleIndices fills idx with len(idx) draws from [0, n), uniformly with
// replacement.
func resampleIndices(rng *rand.Rand, idx []int, n int) {
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
}

func replicate(s *sample.Sample, est Estimator, seed int64, b int) ([]float64, error) {
	rng := rand.New(rand.NewSource(seed))
	idx := make([]int, s.Len())
	resampleIndices(rng, idx, s.Len())

	res, err := s.Subset(idx)
	if err != nil {
		return nil, err
	}

	v, err := est.Estimate(res)
	if err != nil {
		return nil, &ReplicationError{Replication: b, cause: err}
	}
	if len(v) == 0 {
		return nil, &ReplicationError{Replication: b, cause: ErrStatisticWidth}
	}

	return append([]float64(nil), v...), nil
}

func runSequential(ctx context.Context, s *sample.Sample, est Estimator, stats [][]float64, seeds []int64) error {
	for b := range stats {
		if err := ctx.Err(); err != nil {
			return err
		}

		v, err := replicate(s, est, seeds[b], b)
		if err != nil {
			return err
		}
		if b > 0 && len(v) != len(stats[0]) {
			return widthMismatch(b, len(v), len(stats[0]))
		}
		stats[b] = v
	}
	return nil
}

func runParallel(ctx context.Context, s *sample.Sample, est Estimator, stats [][]float64, seeds []int64, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for b := range stats {
		b := b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Each replication writes only its own slot; no shared state
			// beyond the read-only sample.
			v, err := replicate(s, est, seeds[b], b)
			if err != nil {
				return err
			}
			stats[b] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for b := 1; b < len(stats); b++ {
		if len(stats[b]) != len(stats[0]) {
			return widthMismatch(b, len(stats[b]), len(stats[0]))
		}
	}
	return nil
}
