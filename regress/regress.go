// Package regress implements ordinary least squares regression with
// homoscedastic and heteroscedasticity-robust (HC0) covariance estimators.
//
// A fit always includes an intercept: for a sample with p covariates the
// design matrix is [1, x1, ..., xp] and the coefficient vector has p+1
// entries with the intercept first.
package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/bootgo"
	"github.com/hupe1980/bootgo/sample"
)

var (
	// ErrSingularDesign is returned when the design matrix has no full
	// column rank, e.g. on a degenerate bootstrap resample with collinear
	// covariates.
	ErrSingularDesign = errors.New("singular design matrix")

	// ErrCovariateWidth is returned when a prediction input does not match
	// the fitted covariate count.
	ErrCovariateWidth = errors.New("covariate width does not match fit")

	// ErrCovariateRange is returned when a covariate index is out of range.
	ErrCovariateRange = errors.New("covariate index out of range")
)

// CovarianceType selects the coefficient covariance estimator.
type CovarianceType int

const (
	// Homoscedastic is the classical estimator sigma^2 (X'X)^-1 with
	// sigma^2 = SSR / (n - k).
	Homoscedastic CovarianceType = iota

	// HC0 is White's heteroscedasticity-robust sandwich estimator
	// (X'X)^-1 X' diag(e_i^2) X (X'X)^-1.
	HC0
)

func (ct CovarianceType) String() string {
	switch ct {
	case Homoscedastic:
		return "Homoscedastic"
	case HC0:
		return "HC0"
	default:
		return fmt.Sprintf("Unknown(%d)", int(ct))
	}
}

// ErrUnknownCovariance indicates an unsupported CovarianceType.
var ErrUnknownCovariance = errors.New("unknown covariance type")

// Fit is a fitted OLS regression.
type Fit struct {
	coef   []float64
	x      *mat.Dense // n x k design including intercept
	resid  []float64
	xtxInv *mat.Dense
	n, k   int
}

// OLS fits the sample's response on an intercept plus all covariates by
// ordinary least squares. Returns ErrSingularDesign when X'X is not
// invertible (collinear covariates, or fewer observations than parameters).
func OLS(s *sample.Sample) (*Fit, error) {
	n, p := s.Len(), s.Covariates()
	k := p + 1

	x := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			x.Set(i, j+1, s.Covariate(i, j))
		}
	}
	y := mat.NewVecDense(n, s.Responses())

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var b mat.VecDense
	b.MulVec(&xtxInv, &xty)

	coef := make([]float64, k)
	for j := 0; j < k; j++ {
		coef[j] = b.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &b)

	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		resid[i] = y.AtVec(i) - fitted.AtVec(i)
	}

	return &Fit{
		coef:   coef,
		x:      x,
		resid:  resid,
		xtxInv: &xtxInv,
		n:      n,
		k:      k,
	}, nil
}

// Coefficients returns a copy of the fitted coefficient vector, intercept
// first.
func (f *Fit) Coefficients() []float64 {
	return append([]float64(nil), f.coef...)
}

// Intercept returns the fitted intercept.
func (f *Fit) Intercept() float64 {
	return f.coef[0]
}

// Slope returns the fitted coefficient of covariate j (0-based, intercept
// excluded).
func (f *Fit) Slope(j int) (float64, error) {
	if j < 0 || j >= f.k-1 {
		return 0, fmt.Errorf("%w: %d with %d covariates", ErrCovariateRange, j, f.k-1)
	}
	return f.coef[j+1], nil
}

// NumObs returns the number of observations n.
func (f *Fit) NumObs() int { return f.n }

// NumParams returns the number of fitted parameters k (intercept included).
func (f *Fit) NumParams() int { return f.k }

// Residuals returns a copy of the fit residuals.
func (f *Fit) Residuals() []float64 {
	return append([]float64(nil), f.resid...)
}

// Predict returns the fitted conditional mean at the given covariates
// (intercept excluded, same order as the sample columns).
func (f *Fit) Predict(covariates []float64) (float64, error) {
	if len(covariates) != f.k-1 {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrCovariateWidth, len(covariates), f.k-1)
	}
	v := f.coef[0]
	for j, c := range covariates {
		v += f.coef[j+1] * c
	}
	return v, nil
}

// sigma2 is the classical residual variance SSR / (n - k).
func (f *Fit) sigma2() float64 {
	var ssr float64
	for _, e := range f.resid {
		ssr += e * e
	}
	df := f.n - f.k
	if df < 1 {
		df = 1
	}
	return ssr / float64(df)
}

// CovarianceMatrix returns the k x k coefficient covariance estimate.
func (f *Fit) CovarianceMatrix(ct CovarianceType) (*mat.Dense, error) {
	switch ct {
	case Homoscedastic:
		var cov mat.Dense
		cov.Scale(f.sigma2(), f.xtxInv)
		return &cov, nil
	case HC0:
		// Meat: X' diag(e_i^2) X.
		ex := mat.NewDense(f.n, f.k, nil)
		for i := 0; i < f.n; i++ {
			e2 := f.resid[i] * f.resid[i]
			for j := 0; j < f.k; j++ {
				ex.Set(i, j, e2*f.x.At(i, j))
			}
		}
		var meat mat.Dense
		meat.Mul(f.x.T(), ex)

		var tmp, cov mat.Dense
		tmp.Mul(f.xtxInv, &meat)
		cov.Mul(&tmp, f.xtxInv)
		return &cov, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCovariance, ct)
	}
}

// StandardErrors returns the per-coefficient standard errors under the given
// covariance estimator.
func (f *Fit) StandardErrors(ct CovarianceType) ([]float64, error) {
	cov, err := f.CovarianceMatrix(ct)
	if err != nil {
		return nil, err
	}
	ses := make([]float64, f.k)
	for j := 0; j < f.k; j++ {
		ses[j] = math.Sqrt(cov.At(j, j))
	}
	return ses, nil
}

// ConfInt returns per-coefficient confidence intervals coef_j +/- z * se_j
// using the large-sample standard-normal critical value at level alpha.
// Both covariance estimators center intervals on the same point estimates;
// only the widths differ.
func (f *Fit) ConfInt(alpha float64, ct CovarianceType) ([]bootgo.Interval, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("%w: %g", bootgo.ErrInvalidAlpha, alpha)
	}

	ses, err := f.StandardErrors(ct)
	if err != nil {
		return nil, err
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)

	ivs := make([]bootgo.Interval, f.k)
	for j := 0; j < f.k; j++ {
		ivs[j] = bootgo.Interval{
			Lower: f.coef[j] - z*ses[j],
			Upper: f.coef[j] + z*ses[j],
		}
	}
	return ivs, nil
}

// CoefficientEstimator returns an estimator producing the full OLS
// coefficient vector (intercept first), for use with bootgo.Run.
func CoefficientEstimator() bootgo.EstimatorFunc {
	return func(s *sample.Sample) ([]float64, error) {
		fit, err := OLS(s)
		if err != nil {
			return nil, err
		}
		return fit.Coefficients(), nil
	}
}

// SlopeEstimator returns an estimator producing the OLS coefficient of
// covariate j (0-based, intercept excluded), for use with bootgo.Run.
func SlopeEstimator(j int) bootgo.EstimatorFunc {
	return func(s *sample.Sample) ([]float64, error) {
		fit, err := OLS(s)
		if err != nil {
			return nil, err
		}
		slope, err := fit.Slope(j)
		if err != nil {
			return nil, err
		}
		return []float64{slope}, nil
	}
}
