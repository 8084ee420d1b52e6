// Package effect implements plug-in estimators for derived regression
// quantities: the average partial derivative of a quadratic conditional
// mean, and the average treatment effect of a binary treatment under
// unconfoundedness via regression adjustment (G-computation).
//
// Both estimators satisfy the bootgo.Estimator contract, so their sampling
// distributions can be obtained with bootgo.Run.
package effect

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bootgo/regress"
	"github.com/hupe1980/bootgo/sample"
)

var (
	// ErrCovariateCount is returned when a sample has the wrong number of
	// covariate columns for the estimator.
	ErrCovariateCount = errors.New("unexpected covariate count")

	// ErrNonBinaryTreatment is returned when the treatment column contains
	// values other than 0 and 1.
	ErrNonBinaryTreatment = errors.New("treatment must be binary (0 or 1)")

	// ErrInvalidStep is returned when the numeric differentiation step is
	// not positive.
	ErrInvalidStep = errors.New("differentiation step must be positive")
)

// DefaultStep is the half-width used by APD.EstimateNumeric when none is set.
const DefaultStep = 1e-4

// APD estimates the average partial derivative d E[y|x] / dx of the
// quadratic conditional mean E[y|x] = b0 + b1*x + b2*x^2, averaged over the
// observed covariate values: b1 + 2*b2*mean(x).
//
// The sample must have exactly one covariate column; the quadratic term is
// constructed internally.
type APD struct {
	// Step is the half-width h of the symmetric difference quotient used by
	// EstimateNumeric. Defaults to DefaultStep if zero.
	Step float64
}

// NewAPD creates an APD estimator with the default numeric step.
func NewAPD() *APD {
	return &APD{Step: DefaultStep}
}

func (a *APD) fitQuadratic(s *sample.Sample) (*regress.Fit, []float64, error) {
	if s.Covariates() != 1 {
		return nil, nil, fmt.Errorf("%w: got %d covariates, want 1", ErrCovariateCount, s.Covariates())
	}

	x := s.CovariateColumn(0)
	rows := make([][]float64, len(x))
	for i, v := range x {
		rows[i] = []float64{v, v * v}
	}

	quad, err := sample.FromSlices(rows, s.Responses())
	if err != nil {
		return nil, nil, err
	}

	fit, err := regress.OLS(quad)
	if err != nil {
		return nil, nil, err
	}
	return fit, x, nil
}

// Estimate implements bootgo.Estimator using the closed-form derivative of
// the fitted quadratic: b1 + 2*b2*mean(x).
func (a *APD) Estimate(s *sample.Sample) ([]float64, error) {
	fit, x, err := a.fitQuadratic(s)
	if err != nil {
		return nil, err
	}

	b1, _ := fit.Slope(0)
	b2, _ := fit.Slope(1)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	return []float64{b1 + 2*b2*mean}, nil
}

// EstimateNumeric computes the same quantity by symmetric numeric
// differentiation of the fitted conditional mean: the average over i of
// (m(x_i+h) - m(x_i-h)) / (2h). For the quadratic model this agrees with
// Estimate up to floating-point error for any h.
func (a *APD) EstimateNumeric(s *sample.Sample) ([]float64, error) {
	h := a.Step
	if h == 0 {
		h = DefaultStep
	}
	if h < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, h)
	}

	fit, x, err := a.fitQuadratic(s)
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, v := range x {
		up, err := fit.Predict([]float64{v + h, (v + h) * (v + h)})
		if err != nil {
			return nil, err
		}
		down, err := fit.Predict([]float64{v - h, (v - h) * (v - h)})
		if err != nil {
			return nil, err
		}
		sum += (up - down) / (2 * h)
	}

	return []float64{sum / float64(len(x))}, nil
}

// ATE estimates the average treatment effect of a binary treatment under
// unconfoundedness by regression adjustment: fit an outcome model on the
// full sample, then average the per-observation difference between the
// predicted outcomes with the treatment set to 1 and to 0.
//
// Convention: covariate column 0 is the treatment indicator; the remaining
// columns are controls.
type ATE struct {
	// Interactions adds treatment-by-centered-control interaction terms to
	// the outcome model, allowing the treatment effect to vary with the
	// controls. The reported ATE is still the average over the sample.
	Interactions bool
}

// NewATE creates an ATE estimator with a plain additive outcome model.
func NewATE() *ATE {
	return &ATE{}
}

// Estimate implements bootgo.Estimator.
func (e *ATE) Estimate(s *sample.Sample) ([]float64, error) {
	n, p := s.Len(), s.Covariates()
	controls := p - 1

	d := s.CovariateColumn(0)
	for i, v := range d {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: observation %d has treatment %g", ErrNonBinaryTreatment, i, v)
		}
	}

	means := make([]float64, controls)
	for j := 0; j < controls; j++ {
		means[j] = s.CovariateMean(j + 1)
	}

	// Outcome model design: treatment, controls, and optionally
	// treatment x (control - mean) interactions.
	width := 1 + controls
	if e.Interactions {
		width += controls
	}

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 0, width)
		row = append(row, d[i])
		for j := 0; j < controls; j++ {
			row = append(row, s.Covariate(i, j+1))
		}
		if e.Interactions {
			for j := 0; j < controls; j++ {
				row = append(row, d[i]*(s.Covariate(i, j+1)-means[j]))
			}
		}
		rows[i] = row
	}

	design, err := sample.FromSlices(rows, s.Responses())
	if err != nil {
		return nil, err
	}

	fit, err := regress.OLS(design)
	if err != nil {
		return nil, err
	}

	// G-computation: predicted outcome with D forced to 1 minus D forced
	// to 0, averaged over all observations.
	treated := make([]float64, width)
	control := make([]float64, width)
	var sum float64
	for i := 0; i < n; i++ {
		treated[0], control[0] = 1, 0
		for j := 0; j < controls; j++ {
			z := s.Covariate(i, j+1)
			treated[j+1], control[j+1] = z, z
			if e.Interactions {
				treated[1+controls+j] = z - means[j]
				control[1+controls+j] = 0
			}
		}

		y1, err := fit.Predict(treated)
		if err != nil {
			return nil, err
		}
		y0, err := fit.Predict(control)
		if err != nil {
			return nil, err
		}
		sum += y1 - y0
	}

	return []float64{sum / float64(n)}, nil
}
