package bootgo

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a confidence interval. Lower <= Upper always holds for
// intervals produced by this package.
type Interval struct {
	Lower float64
	Upper float64
}

// Width returns Upper - Lower.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether v lies in [Lower, Upper].
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lower && v <= iv.Upper
}

// Distribution is the empirical sampling distribution of a statistic:
// one fixed-width row per bootstrap replication, in replication order.
// It is only ever constructed complete; partial runs are discarded by Run.
// A Distribution is immutable and safe for concurrent use.
type Distribution struct {
	stats   [][]float64
	width   int
	logger  *Logger
	metrics MetricsCollector
}

// NewDistribution wraps replication results produced outside Run, for
// example statistics collected by a custom resampling scheme. Rows are
// copied and must share a single non-zero width.
func NewDistribution(stats [][]float64) (*Distribution, error) {
	if len(stats) == 0 {
		return nil, ErrInvalidReplications
	}

	width := len(stats[0])
	if width == 0 {
		return nil, ErrStatisticWidth
	}

	rows := make([][]float64, len(stats))
	for b, row := range stats {
		if len(row) != width {
			return nil, widthMismatch(b, len(row), width)
		}
		rows[b] = append([]float64(nil), row...)
	}

	return &Distribution{
		stats:   rows,
		width:   width,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}, nil
}

// Replications returns the number of bootstrap replications B.
func (d *Distribution) Replications() int {
	return len(d.stats)
}

// Width returns the number of components of the bootstrapped statistic.
func (d *Distribution) Width() int {
	return d.width
}

// Component returns a copy of the replication-ordered values of component j.
func (d *Distribution) Component(j int) ([]float64, error) {
	if j < 0 || j >= d.width {
		return nil, fmt.Errorf("%w: %d with width %d", ErrInvalidComponent, j, d.width)
	}
	out := make([]float64, len(d.stats))
	for b, row := range d.stats {
		out[b] = row[j]
	}
	return out, nil
}

// Mean returns the bootstrap mean of component j.
func (d *Distribution) Mean(j int) (float64, error) {
	col, err := d.Component(j)
	if err != nil {
		return 0, err
	}
	return stat.Mean(col, nil), nil
}

// StandardError returns the bootstrap standard error of component j: the
// standard deviation of the bootstrap distribution with denominator B
// (the plug-in convention, not B-1). At least 2 replications are required.
func (d *Distribution) StandardError(j int) (float64, error) {
	if len(d.stats) < 2 {
		return 0, ErrTooFewReplications
	}
	col, err := d.Component(j)
	if err != nil {
		return 0, err
	}
	return plugInStdDev(col), nil
}

// PercentileInterval returns, per component, the interval spanned by the
// empirical alpha/2 and 1-alpha/2 quantiles of the bootstrap distribution.
// Quantiles interpolate linearly between order statistics at position
// q*(B-1), so both bounds lie within the observed range and Lower <= Upper.
//
// alpha must be in (0, 1); alpha = 0.05 yields a 95% interval.
func (d *Distribution) PercentileInterval(alpha float64) ([]Interval, error) {
	start := time.Now()
	ivs, err := d.percentileInterval(alpha)
	d.record("percentile", alpha, time.Since(start), err)
	return ivs, err
}

func (d *Distribution) percentileInterval(alpha float64) ([]Interval, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidAlpha, alpha)
	}

	ivs := make([]Interval, d.width)
	sorted := make([]float64, len(d.stats))
	for j := range ivs {
		for b, row := range d.stats {
			sorted[b] = row[j]
		}
		sort.Float64s(sorted)
		ivs[j] = Interval{
			Lower: quantile(sorted, alpha/2),
			Upper: quantile(sorted, 1-alpha/2),
		}
	}
	return ivs, nil
}

// NormalInterval returns, per component, the normal-approximation interval
// point[j] +/- z * se[j], where se is the bootstrap standard error
// (denominator B) and z the two-sided standard-normal critical value at
// level alpha (1.959964 for alpha = 0.05).
//
// point is the statistic computed once on the original, non-resampled
// sample. It is an explicit parameter: the interval is centered on the
// original-sample estimate, never on the bootstrap mean.
func (d *Distribution) NormalInterval(point []float64, alpha float64) ([]Interval, error) {
	start := time.Now()
	ivs, err := d.normalInterval(point, alpha)
	d.record("normal", alpha, time.Since(start), err)
	return ivs, err
}

func (d *Distribution) normalInterval(point []float64, alpha float64) ([]Interval, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidAlpha, alpha)
	}
	if len(d.stats) < 2 {
		return nil, ErrTooFewReplications
	}
	if len(point) != d.width {
		return nil, fmt.Errorf("%w: %d point estimates for width %d", ErrPointEstimateWidth, len(point), d.width)
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)

	ivs := make([]Interval, d.width)
	col := make([]float64, len(d.stats))
	for j := range ivs {
		for b, row := range d.stats {
			col[b] = row[j]
		}
		se := plugInStdDev(col)
		ivs[j] = Interval{
			Lower: point[j] - z*se,
			Upper: point[j] + z*se,
		}
	}
	return ivs, nil
}

func (d *Distribution) record(method string, alpha float64, duration time.Duration, err error) {
	d.metrics.RecordInterval(method, duration, err)
	d.logger.LogInterval(method, alpha, err)
}

// quantile returns the empirical q-quantile of sorted values using linear
// interpolation between order statistics at position q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// plugInStdDev is the standard deviation with denominator n, matching the
// plug-in convention used for bootstrap standard errors.
func plugInStdDev(values []float64) float64 {
	mean := stat.Mean(values, nil)
	var ss float64
	for _, v := range values {
		dev := v - mean
		ss += dev * dev
	}
	return math.Sqrt(ss / float64(len(values)))
}
