// Package sample defines the immutable observation collection that point
// estimators and the bootstrap engine operate on.
//
// A Sample owns its data: constructors copy the provided covariates and
// responses, and Subset copies rows into a fresh Sample, so resamples never
// alias the original observations.
package sample

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when a sample would contain no observations.
	ErrEmpty = errors.New("sample must contain at least one observation")

	// ErrLengthMismatch is returned when covariate rows and responses disagree in count.
	ErrLengthMismatch = errors.New("covariate and response lengths differ")

	// ErrRagged is returned when covariate rows have differing widths.
	ErrRagged = errors.New("covariate rows must all have the same width")

	// ErrIndexRange is returned when a resample index is outside [0, n).
	ErrIndexRange = errors.New("resample index out of range")
)

// Sample is an ordered collection of n observations, each a covariate vector
// paired with a scalar response. Samples are immutable once constructed.
type Sample struct {
	x *mat.Dense // n x p covariates
	y []float64  // n responses
}

// New creates a Sample from an n x p covariate matrix and n responses.
// The inputs are copied.
func New(x *mat.Dense, y []float64) (*Sample, error) {
	if x == nil || len(y) == 0 {
		return nil, ErrEmpty
	}
	n, _ := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d covariate rows, %d responses", ErrLengthMismatch, n, len(y))
	}
	return &Sample{
		x: mat.DenseCopyOf(x),
		y: append([]float64(nil), y...),
	}, nil
}

// FromSlices creates a Sample from row-major covariates and responses.
func FromSlices(x [][]float64, y []float64) (*Sample, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmpty
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d covariate rows, %d responses", ErrLengthMismatch, len(x), len(y))
	}

	p := len(x[0])
	if p == 0 {
		return nil, fmt.Errorf("%w: row 0 has no covariates", ErrRagged)
	}

	m := mat.NewDense(len(x), p, nil)
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(row), p)
		}
		m.SetRow(i, row)
	}

	return &Sample{x: m, y: append([]float64(nil), y...)}, nil
}

// Univariate creates a Sample with a single covariate column.
func Univariate(x, y []float64) (*Sample, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmpty
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d covariates, %d responses", ErrLengthMismatch, len(x), len(y))
	}
	return &Sample{
		x: mat.NewDense(len(x), 1, append([]float64(nil), x...)),
		y: append([]float64(nil), y...),
	}, nil
}

// Len returns the number of observations n.
func (s *Sample) Len() int {
	return len(s.y)
}

// Covariates returns the number of covariate columns p.
func (s *Sample) Covariates() int {
	_, p := s.x.Dims()
	return p
}

// Covariate returns the j-th covariate of observation i.
func (s *Sample) Covariate(i, j int) float64 {
	return s.x.At(i, j)
}

// Response returns the response of observation i.
func (s *Sample) Response(i int) float64 {
	return s.y[i]
}

// Responses returns a copy of all responses.
func (s *Sample) Responses() []float64 {
	return append([]float64(nil), s.y...)
}

// CovariateColumn returns a copy of covariate column j.
func (s *Sample) CovariateColumn(j int) []float64 {
	col := make([]float64, s.Len())
	mat.Col(col, j, s.x)
	return col
}

// CovariateMean returns the mean of covariate column j.
func (s *Sample) CovariateMean(j int) float64 {
	return stat.Mean(s.CovariateColumn(j), nil)
}

// Subset builds a new Sample from the observations at the given indices,
// in order. Repeated indices are allowed, which is what makes this the
// resampling primitive: a bootstrap resample is Subset with n indices drawn
// uniformly with replacement. Rows are copied, never aliased.
func (s *Sample) Subset(indices []int) (*Sample, error) {
	if len(indices) == 0 {
		return nil, ErrEmpty
	}

	n := s.Len()
	_, p := s.x.Dims()

	x := mat.NewDense(len(indices), p, nil)
	y := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: index %d with n=%d", ErrIndexRange, idx, n)
		}
		for j := 0; j < p; j++ {
			x.Set(i, j, s.x.At(idx, j))
		}
		y[i] = s.y[idx]
	}

	return &Sample{x: x, y: y}, nil
}
