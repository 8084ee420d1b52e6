// Package testutil provides seeded synthetic data generators used by tests
// and examples.
package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/bootgo/sample"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// LinearSample simulates n observations of
//
//	y = intercept + slope*x + sigma*eps
//
// with x ~ U(0, 10) and eps ~ N(0, 1).
func (r *RNG) LinearSample(n int, intercept, slope, sigma float64) *sample.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = r.rand.Float64() * 10
		y[i] = intercept + slope*x[i] + sigma*r.rand.NormFloat64()
	}
	return mustUnivariate(x, y)
}

// HeteroscedasticSample simulates n observations of a linear model whose
// noise standard deviation grows with the covariate:
//
//	y = intercept + slope*x + (0.3 + 0.7*x)*eps
//
// with x ~ U(0, 10) and eps ~ N(0, 1). Under this design the classical
// homoscedastic OLS standard errors are wrong and differ from HC0.
func (r *RNG) HeteroscedasticSample(n int, intercept, slope float64) *sample.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = r.rand.Float64() * 10
		sd := 0.3 + 0.7*x[i]
		y[i] = intercept + slope*x[i] + sd*r.rand.NormFloat64()
	}
	return mustUnivariate(x, y)
}

// QuadraticSample simulates n observations of
//
//	y = b0 + b1*x + b2*x^2 + sigma*eps
//
// with x ~ N(0, 1) and eps ~ N(0, 1).
func (r *RNG) QuadraticSample(n int, b0, b1, b2, sigma float64) *sample.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = r.rand.NormFloat64()
		y[i] = b0 + b1*x[i] + b2*x[i]*x[i] + sigma*r.rand.NormFloat64()
	}
	return mustUnivariate(x, y)
}

// TreatmentSample simulates n observations of a confounded binary treatment
// with known average treatment effect -1:
//
//	x ~ N(0, 1)
//	P(d=1 | x) = 1 / (1 + exp(-x))
//	y = 1 + 2*x - d + interaction*d*x + sigma*eps
//
// The covariates are [d, x], treatment first. Since E[x] = 0, the
// population ATE is -1 for any interaction coefficient.
func (r *RNG) TreatmentSample(n int, interaction, sigma float64) *sample.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]float64, n)
	y := make([]float64, n)
	for i := range rows {
		x := r.rand.NormFloat64()
		d := 0.0
		if r.rand.Float64() < 1/(1+math.Exp(-x)) {
			d = 1
		}
		rows[i] = []float64{d, x}
		y[i] = 1 + 2*x - d + interaction*d*x + sigma*r.rand.NormFloat64()
	}

	s, err := sample.FromSlices(rows, y)
	if err != nil {
		panic(err)
	}
	return s
}

func mustUnivariate(x, y []float64) *sample.Sample {
	s, err := sample.Univariate(x, y)
	if err != nil {
		panic(err)
	}
	return s
}
