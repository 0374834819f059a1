// Package gaussian implements Gaussian ART (spec.md §4.2, table row
// "Gaussian ART"): a per-category Gaussian density with diagonal
// covariance, updated incrementally (sample mean/variance with a floor
// enforcing invariant I5, var >= rho_b), generalized onto the shared
// resonance.Engine[Weight] state machine. Mean and variance are carried as
// gonum vectors (spec.md's domain-stack wiring calls for gonum here and in
// quadratic), with gonum/floats used for the reductions.
package gaussian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/nnart/resonance"
)

// Weight is a diagonal Gaussian: mean, variance (floored at RhoB) and the
// sample count needed for Welford-style incremental updates.
type Weight struct {
	Mean *mat.VecDense
	Var  *mat.VecDense
	N    int
}

// Params extends resonance.Params with Gaussian ART's prior/floor controls.
type Params struct {
	resonance.Params
	Gamma float64 // blend rate toward the new sample, (0,1]
	RhoA  float64 // initial variance assigned to a freshly committed category
	RhoB  float64 // variance floor (invariant I5)
}

// DefaultParams picks the maximum gamma (1.0) and a small variance floor.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	return Params{Params: p, Gamma: 1.0, RhoA: 1.0, RhoB: 1e-3}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, gamma, rhoA, rhoB float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.Gamma = gamma
	p.RhoA = rhoA
	p.RhoB = rhoB
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks gamma/rhoA/rhoB in addition to the common fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Gamma <= 0 || p.Gamma > 1 {
		return fmt.Errorf("%w: gamma must be in (0,1], got %f", resonance.ErrParameterRange, p.Gamma)
	}
	if p.RhoA <= 0 {
		return fmt.Errorf("%w: rhoA must be > 0, got %f", resonance.ErrParameterRange, p.RhoA)
	}
	if p.RhoB <= 0 {
		return fmt.Errorf("%w: rhoB must be > 0, got %f", resonance.ErrParameterRange, p.RhoB)
	}
	return nil
}

type gaussParams struct {
	gamma, rhoA, rhoB float64
}

type rules struct {
	p gaussParams
}

func mahalanobisSquared(x, mean, variance []float64) float64 {
	terms := make([]float64, len(x))
	for i := range x {
		d := x[i] - mean[i]
		terms[i] = d * d / variance[i]
	}
	return floats.Sum(terms)
}

func logPDF(x, mean, variance []float64) float64 {
	var sum float64
	for i := range x {
		d := x[i] - mean[i]
		sum += -0.5*(d*d/variance[i]) - 0.5*math.Log(2*math.Pi*variance[i])
	}
	return sum
}

func (r rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	return math.Exp(logPDF(input, w.Mean.RawVector().Data, w.Var.RawVector().Data))
}

func (r rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	d2 := mahalanobisSquared(input, w.Mean.RawVector().Data, w.Var.RawVector().Data)
	return math.Exp(-d2 / (2 * float64(len(input))))
}

func (r rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	d := len(input)
	n := w.N + 1
	newMean := make([]float64, d)
	newVar := make([]float64, d)
	oldMean := w.Mean.RawVector().Data
	oldVar := w.Var.RawVector().Data
	for i := 0; i < d; i++ {
		delta := input[i] - oldMean[i]
		m := oldMean[i] + r.p.gamma*delta/float64(n)
		newMean[i] = m
		delta2 := input[i] - m
		v := (float64(n-1)*oldVar[i] + delta*delta2) / float64(n)
		if v < r.p.rhoB {
			v = r.p.rhoB
		}
		newVar[i] = v
	}
	return Weight{Mean: mat.NewVecDense(d, newMean), Var: mat.NewVecDense(d, newVar), N: n}
}

func (r rules) NewWeight(input []float64, params resonance.Params) Weight {
	d := len(input)
	mean := make([]float64, d)
	copy(mean, input)
	variance := make([]float64, d)
	for i := range variance {
		variance[i] = r.p.rhoA
	}
	return Weight{Mean: mat.NewVecDense(d, mean), Var: mat.NewVecDense(d, variance), N: 1}
}

// Engine wraps the shared resonance state machine over raw dense inputs; no
// complement coding applies to Gaussian ART (its weight layout is mean plus
// variance, not a doubled vector: spec.md Open Question Q2, resolved
// per-variant).
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds a Gaussian ART engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	gp := gaussParams{gamma: params.Gamma, rhoA: params.RhoA, rhoB: params.RhoB}
	core := resonance.NewEngine[Weight](rules{p: gp}, params.Params)
	return &Engine{Engine: core, dim: inputDim}, nil
}

func (e *Engine) validate(raw []float64) error {
	if len(raw) != e.dim {
		return fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	return nil
}

// Learn runs one learn cycle over a raw input.
func (e *Engine) Learn(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if err := e.validate(raw); err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Learn(raw, params...)
}

// Predict runs one predict cycle over a raw input.
func (e *Engine) Predict(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if err := e.validate(raw); err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Predict(raw, params...)
}
