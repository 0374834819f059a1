// Package art2 implements ART-2 (spec.md §4.2, table row "ART-2"): a
// contrast-enhanced, noise-suppressed normalized input compared by
// cosine-like similarity, with a running-average update rule. Grounded on
// the retrieved ART2Manager reference (F1/F2 layering, theta/epsilon style
// preprocessing, bottom-up/top-down weight pair), generalized onto the
// shared resonance.Engine[Weight] state machine.
package art2

import (
	"fmt"
	"math"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is ART-2's running-average category prototype plus the sample
// count needed to keep the average incremental rather than beta-blended.
type Weight struct {
	Vector []float64
	N      int
}

// Params extends resonance.Params with ART-2's contrast (theta) and noise
// suppression (epsilon) preprocessing controls.
type Params struct {
	resonance.Params
	Theta   float64
	Epsilon float64
}

// DefaultParams mirrors the reference manager's constants: rho=0.9,
// theta=0.1 (activity threshold), epsilon small enough to only zero true
// noise.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	p.Vigilance = 0.9
	return Params{Params: p, Theta: 0.1, Epsilon: 1e-6}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, theta, epsilon float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.Theta = theta
	p.Epsilon = epsilon
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks theta and epsilon in addition to the common fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Theta < 0 || p.Theta > 1 {
		return fmt.Errorf("%w: theta must be in [0,1], got %f", resonance.ErrParameterRange, p.Theta)
	}
	if p.Epsilon <= 0 || p.Epsilon > 1 {
		return fmt.Errorf("%w: epsilon must be in (0,1], got %f", resonance.ErrParameterRange, p.Epsilon)
	}
	return nil
}

// preprocess normalizes raw to unit L2 norm, suppresses components below
// theta (contrast enhancement), zeroes anything left under epsilon (noise
// suppression), then renormalizes.
func preprocess(raw []float64, theta, epsilon float64) []float64 {
	out := make([]float64, len(raw))
	copy(out, raw)
	normalizeInPlace(out)

	for i, v := range out {
		if v < theta {
			out[i] = 0
		}
	}
	for i, v := range out {
		if math.Abs(v) < epsilon {
			out[i] = 0
		}
	}
	normalizeInPlace(out)
	return out
}

func normalizeInPlace(v []float64) {
	norm := math.Sqrt(simd.Shared.SumFloat64(squareInto(v)))
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}

func squareInto(v []float64) []float64 {
	sq := make([]float64, len(v))
	for i, x := range v {
		sq[i] = x * x
	}
	return sq
}

func vectorNorm(v []float64) float64 {
	return math.Sqrt(simd.Shared.SumFloat64(squareInto(v)))
}

type rules struct{}

func cosineLike(a, b []float64, epsilon float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	denom := vectorNorm(a)*vectorNorm(b) + epsilon
	return dot / denom
}

func (rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	return math.Max(0, cosineLike(input, w.Vector, 1e-12))
}

func (rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	return math.Max(0, cosineLike(input, w.Vector, 1e-12))
}

func (rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	n := w.N + 1
	newVec := make([]float64, len(w.Vector))
	for i := range newVec {
		newVec[i] = w.Vector[i] + (input[i]-w.Vector[i])/float64(n)
	}
	return Weight{Vector: newVec, N: n}
}

func (rules) NewWeight(input []float64, params resonance.Params) Weight {
	v := make([]float64, len(input))
	copy(v, input)
	return Weight{Vector: v, N: 1}
}

// Engine wraps the shared resonance state machine, applying ART-2's
// contrast/noise-suppression preprocessing to every raw input before it
// reaches the activation/match/update rules.
type Engine struct {
	*resonance.Engine[Weight]
	dim   int
	theta float64
	eps   float64
}

// New builds an ART-2 engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	core := resonance.NewEngine[Weight](rules{}, params.Params)
	return &Engine{Engine: core, dim: inputDim, theta: params.Theta, eps: params.Epsilon}, nil
}

func (e *Engine) prepare(raw []float64) ([]float64, error) {
	if len(raw) != e.dim {
		return nil, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	return preprocess(raw, e.theta, e.eps), nil
}

// Learn preprocesses raw and runs one learn cycle.
func (e *Engine) Learn(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	processed, err := e.prepare(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Learn(processed, params...)
}

// Predict preprocesses raw and runs one predict cycle (no mutation).
func (e *Engine) Predict(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	processed, err := e.prepare(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Predict(processed, params...)
}
