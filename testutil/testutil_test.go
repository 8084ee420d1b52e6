package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bootgo/testutil"
)

func TestRNGReproducible(t *testing.T) {
	a := testutil.NewRNG(7)
	b := testutil.NewRNG(7)

	sa := a.LinearSample(20, 1, 2, 0.5)
	sb := b.LinearSample(20, 1, 2, 0.5)

	assert.Equal(t, sa.Responses(), sb.Responses())
	assert.Equal(t, sa.CovariateColumn(0), sb.CovariateColumn(0))
}

func TestRNGReset(t *testing.T) {
	r := testutil.NewRNG(7)
	assert.Equal(t, int64(7), r.Seed())

	first := r.Float64()
	r.Float64()
	r.Reset()
	assert.Equal(t, first, r.Float64())
}

func TestSampleShapes(t *testing.T) {
	r := testutil.NewRNG(1)

	linear := r.LinearSample(15, 0, 1, 1)
	assert.Equal(t, 15, linear.Len())
	assert.Equal(t, 1, linear.Covariates())

	hetero := r.HeteroscedasticSample(10, 0, 1)
	assert.Equal(t, 10, hetero.Len())
	assert.Equal(t, 1, hetero.Covariates())

	quad := r.QuadraticSample(12, 0, 1, 1, 1)
	assert.Equal(t, 12, quad.Len())
	assert.Equal(t, 1, quad.Covariates())

	treat := r.TreatmentSample(25, 0.5, 1)
	assert.Equal(t, 25, treat.Len())
	assert.Equal(t, 2, treat.Covariates())
}

func TestTreatmentSampleBinary(t *testing.T) {
	r := testutil.NewRNG(2)
	s := r.TreatmentSample(100, 0, 1)

	ones := 0
	for i := 0; i < s.Len(); i++ {
		d := s.Covariate(i, 0)
		require.Contains(t, []float64{0, 1}, d)
		if d == 1 {
			ones++
		}
	}

	// P(d=1|x) is logistic in x ~ N(0,1), so both arms occur.
	assert.Greater(t, ones, 0)
	assert.Less(t, ones, s.Len())
}
