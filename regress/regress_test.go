package regress_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bootgo"
	"github.com/hupe1980/bootgo/regress"
	"github.com/hupe1980/bootgo/sample"
	"github.com/hupe1980/bootgo/testutil"
)

func TestOLSExactFit(t *testing.T) {
	// Noiseless line y = 2 + 3x is recovered exactly.
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2 + 3*v
	}
	s, err := sample.Univariate(x, y)
	require.NoError(t, err)

	fit, err := regress.OLS(s)
	require.NoError(t, err)

	assert.Equal(t, 10, fit.NumObs())
	assert.Equal(t, 2, fit.NumParams())
	assert.InDelta(t, 2, fit.Intercept(), 1e-8)

	slope, err := fit.Slope(0)
	require.NoError(t, err)
	assert.InDelta(t, 3, slope, 1e-8)

	coef := fit.Coefficients()
	require.Len(t, coef, 2)
	assert.InDelta(t, 2, coef[0], 1e-8)
	assert.InDelta(t, 3, coef[1], 1e-8)

	for _, e := range fit.Residuals() {
		assert.InDelta(t, 0, e, 1e-8)
	}

	pred, err := fit.Predict([]float64{4})
	require.NoError(t, err)
	assert.InDelta(t, 14, pred, 1e-8)
}

func TestOLSNoisyRecovery(t *testing.T) {
	rng := testutil.NewRNG(21)
	s := rng.LinearSample(200, 3, 7, 2)

	fit, err := regress.OLS(s)
	require.NoError(t, err)

	slope, err := fit.Slope(0)
	require.NoError(t, err)
	assert.InDelta(t, 7, slope, 0.5)
	assert.InDelta(t, 3, fit.Intercept(), 1.5)
}

func TestOLSSingularDesign(t *testing.T) {
	t.Run("CollinearColumns", func(t *testing.T) {
		rows := [][]float64{{1, 2}, {2, 4}, {3, 6}, {4, 8}}
		s, err := sample.FromSlices(rows, []float64{1, 2, 3, 4})
		require.NoError(t, err)

		_, err = regress.OLS(s)
		assert.ErrorIs(t, err, regress.ErrSingularDesign)
	})

	t.Run("ConstantColumn", func(t *testing.T) {
		// A constant covariate duplicates the intercept.
		s, err := sample.Univariate([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4})
		require.NoError(t, err)

		_, err = regress.OLS(s)
		assert.ErrorIs(t, err, regress.ErrSingularDesign)
	})
}

func TestFitValidation(t *testing.T) {
	s, err := sample.Univariate([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	fit, err := regress.OLS(s)
	require.NoError(t, err)

	_, err = fit.Slope(1)
	assert.ErrorIs(t, err, regress.ErrCovariateRange)
	_, err = fit.Slope(-1)
	assert.ErrorIs(t, err, regress.ErrCovariateRange)

	_, err = fit.Predict([]float64{1, 2})
	assert.ErrorIs(t, err, regress.ErrCovariateWidth)
}

func TestCovarianceTypeString(t *testing.T) {
	assert.Equal(t, "Homoscedastic", regress.Homoscedastic.String())
	assert.Equal(t, "HC0", regress.HC0.String())
	assert.Contains(t, regress.CovarianceType(9).String(), "Unknown")
}

func TestCovarianceMatrixUnknownType(t *testing.T) {
	s, err := sample.Univariate([]float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)
	fit, err := regress.OLS(s)
	require.NoError(t, err)

	_, err = fit.CovarianceMatrix(regress.CovarianceType(9))
	assert.ErrorIs(t, err, regress.ErrUnknownCovariance)
}

func TestStandardErrors(t *testing.T) {
	rng := testutil.NewRNG(22)
	s := rng.LinearSample(100, 3, 7, 2)

	fit, err := regress.OLS(s)
	require.NoError(t, err)

	for _, ct := range []regress.CovarianceType{regress.Homoscedastic, regress.HC0} {
		ses, err := fit.StandardErrors(ct)
		require.NoError(t, err)
		require.Len(t, ses, 2)
		for _, se := range ses {
			assert.Greater(t, se, 0.0, "type=%v", ct)
		}
	}
}

func TestConfIntHeteroscedastic(t *testing.T) {
	rng := testutil.NewRNG(23)
	s := rng.HeteroscedasticSample(200, 3, 7)

	fit, err := regress.OLS(s)
	require.NoError(t, err)

	homo, err := fit.ConfInt(0.05, regress.Homoscedastic)
	require.NoError(t, err)
	hc0, err := fit.ConfInt(0.05, regress.HC0)
	require.NoError(t, err)
	require.Len(t, homo, 2)
	require.Len(t, hc0, 2)

	// Same point estimates, so same centers; only the widths differ.
	for j := range homo {
		assert.InDelta(t,
			(homo[j].Lower+homo[j].Upper)/2,
			(hc0[j].Lower+hc0[j].Upper)/2,
			1e-9,
		)
	}

	relDiff := math.Abs(hc0[1].Width()-homo[1].Width()) / homo[1].Width()
	assert.Greater(t, relDiff, 0.02, "homo width %g, HC0 width %g", homo[1].Width(), hc0[1].Width())
}

func TestConfIntInvalidAlpha(t *testing.T) {
	s, err := sample.Univariate([]float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)
	fit, err := regress.OLS(s)
	require.NoError(t, err)

	for _, alpha := range []float64{0, 1, -0.5} {
		_, err := fit.ConfInt(alpha, regress.Homoscedastic)
		assert.ErrorIs(t, err, bootgo.ErrInvalidAlpha, "alpha=%g", alpha)
	}
}

func TestEstimators(t *testing.T) {
	rng := testutil.NewRNG(24)
	s := rng.LinearSample(100, 3, 7, 2)

	t.Run("Coefficients", func(t *testing.T) {
		v, err := regress.CoefficientEstimator().Estimate(s)
		require.NoError(t, err)
		require.Len(t, v, 2)
		assert.InDelta(t, 7, v[1], 1)
	})

	t.Run("Slope", func(t *testing.T) {
		v, err := regress.SlopeEstimator(0).Estimate(s)
		require.NoError(t, err)
		require.Len(t, v, 1)
		assert.InDelta(t, 7, v[0], 1)
	})

	t.Run("SlopeOutOfRange", func(t *testing.T) {
		_, err := regress.SlopeEstimator(3).Estimate(s)
		assert.ErrorIs(t, err, regress.ErrCovariateRange)
	})
}
