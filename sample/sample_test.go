package sample_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/bootgo/sample"
)

func TestConstructors(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
		s, err := sample.New(x, []float64{10, 20, 30})
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, 2, s.Covariates())
		assert.Equal(t, 4.0, s.Covariate(1, 1))
		assert.Equal(t, 30.0, s.Response(2))
	})

	t.Run("NewCopiesInputs", func(t *testing.T) {
		x := mat.NewDense(2, 1, []float64{1, 2})
		y := []float64{10, 20}
		s, err := sample.New(x, y)
		require.NoError(t, err)

		x.Set(0, 0, 99)
		y[0] = 99
		assert.Equal(t, 1.0, s.Covariate(0, 0))
		assert.Equal(t, 10.0, s.Response(0))
	})

	t.Run("FromSlices", func(t *testing.T) {
		s, err := sample.FromSlices([][]float64{{1, 2}, {3, 4}}, []float64{5, 6})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 2, s.Covariates())
	})

	t.Run("Univariate", func(t *testing.T) {
		x := []float64{1, 2, 3}
		s, err := sample.Univariate(x, []float64{4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Covariates())

		x[0] = 99
		assert.Equal(t, 1.0, s.Covariate(0, 0))
	})
}

func TestConstructorErrors(t *testing.T) {
	tests := []struct {
		name    string
		fn      func() error
		wantErr error
	}{
		{
			name: "NewNilMatrix",
			fn: func() error {
				_, err := sample.New(nil, []float64{1})
				return err
			},
			wantErr: sample.ErrEmpty,
		},
		{
			name: "NewLengthMismatch",
			fn: func() error {
				_, err := sample.New(mat.NewDense(2, 1, []float64{1, 2}), []float64{1})
				return err
			},
			wantErr: sample.ErrLengthMismatch,
		},
		{
			name: "FromSlicesEmpty",
			fn: func() error {
				_, err := sample.FromSlices(nil, nil)
				return err
			},
			wantErr: sample.ErrEmpty,
		},
		{
			name: "FromSlicesLengthMismatch",
			fn: func() error {
				_, err := sample.FromSlices([][]float64{{1}, {2}}, []float64{1})
				return err
			},
			wantErr: sample.ErrLengthMismatch,
		},
		{
			name: "FromSlicesRagged",
			fn: func() error {
				_, err := sample.FromSlices([][]float64{{1, 2}, {3}}, []float64{1, 2})
				return err
			},
			wantErr: sample.ErrRagged,
		},
		{
			name: "FromSlicesNoCovariates",
			fn: func() error {
				_, err := sample.FromSlices([][]float64{{}}, []float64{1})
				return err
			},
			wantErr: sample.ErrRagged,
		},
		{
			name: "UnivariateEmpty",
			fn: func() error {
				_, err := sample.Univariate(nil, nil)
				return err
			},
			wantErr: sample.ErrEmpty,
		},
		{
			name: "UnivariateLengthMismatch",
			fn: func() error {
				_, err := sample.Univariate([]float64{1, 2}, []float64{1})
				return err
			},
			wantErr: sample.ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), tt.wantErr)
		})
	}
}

func TestAccessors(t *testing.T) {
	s, err := sample.FromSlices([][]float64{{1, 10}, {2, 20}, {3, 30}}, []float64{4, 5, 6})
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 5, 6}, s.Responses())
	assert.Equal(t, []float64{10, 20, 30}, s.CovariateColumn(1))
	assert.InDelta(t, 2.0, s.CovariateMean(0), 1e-12)

	// Returned slices are copies.
	s.Responses()[0] = 99
	assert.Equal(t, 4.0, s.Response(0))
	s.CovariateColumn(0)[0] = 99
	assert.Equal(t, 1.0, s.Covariate(0, 0))
}

func TestSubset(t *testing.T) {
	s, err := sample.FromSlices([][]float64{{1, 10}, {2, 20}, {3, 30}}, []float64{4, 5, 6})
	require.NoError(t, err)

	t.Run("RepeatedIndices", func(t *testing.T) {
		sub, err := s.Subset([]int{2, 0, 2})
		require.NoError(t, err)
		assert.Equal(t, 3, sub.Len())
		assert.Equal(t, 2, sub.Covariates())
		assert.Equal(t, []float64{6, 4, 6}, sub.Responses())
		assert.Equal(t, []float64{30, 10, 30}, sub.CovariateColumn(1))
	})

	t.Run("DifferentLength", func(t *testing.T) {
		sub, err := s.Subset([]int{1})
		require.NoError(t, err)
		assert.Equal(t, 1, sub.Len())
		assert.Equal(t, 5.0, sub.Response(0))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := s.Subset(nil)
		assert.ErrorIs(t, err, sample.ErrEmpty)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := s.Subset([]int{0, 3})
		assert.ErrorIs(t, err, sample.ErrIndexRange)

		_, err = s.Subset([]int{-1})
		assert.ErrorIs(t, err, sample.ErrIndexRange)
	})

	t.Run("DoesNotAliasParent", func(t *testing.T) {
		sub, err := s.Subset([]int{0, 1, 2})
		require.NoError(t, err)
		sub.Responses()[0] = 99
		assert.Equal(t, 4.0, s.Response(0))
	})
}
