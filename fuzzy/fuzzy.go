// Package fuzzy implements Fuzzy ART (spec.md §4.2, table row "Fuzzy ART"):
// complement-coded dense weights, choice-function activation, and the
// beta-weighted fuzzy-intersection update rule, generalized onto the shared
// resonance.Engine[Weight] state machine instead of owning its own
// activation/resonance loop.
package fuzzy

import (
	"fmt"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is a complement-coded dense category prototype: length 2*D, every
// component in [0,1], with w[i]+w[i+D] <= 1+eps_num (invariant I3).
type Weight []float64

// Params extends the common resonance.Params; Fuzzy ART uses no fields
// beyond Vigilance, ChoiceAlpha and LearningRate.
type Params struct {
	resonance.Params
}

// DefaultParams picks the recommended constants: rho=0.86, alpha=0.01,
// beta=1.0 (fast commitment/learning).
func DefaultParams() Params {
	return Params{Params: resonance.DefaultParams()}
}

// NewParams validates and returns a Params value, per invariant I7: a
// parameter error fails construction, never a learning call.
func NewParams(vigilance, alpha, beta float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.ChoiceAlpha = alpha
	p.LearningRate = beta
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

type rules struct{}

func (rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	fi := make([]float64, len(w))
	fiNorm, wNorm := simd.Shared.FuzzyIntersectionNorm(input, w, fi)
	return fiNorm / (params.ChoiceAlpha + wNorm)
}

func (rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	fi := make([]float64, len(w))
	fiNorm, _ := simd.Shared.FuzzyIntersectionNorm(input, w, fi)
	inputNorm := simd.Shared.SumFloat64(input)
	if fiNorm == 0 && inputNorm == 0 {
		return 1
	}
	return fiNorm / inputNorm
}

func (rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	fi := make([]float64, len(w))
	simd.Shared.FuzzyIntersectionNorm(input, w, fi)
	newW := make(Weight, len(w))
	copy(newW, w)
	simd.Shared.UpdateFuzzyWeights(newW, fi, params.LearningRate)
	return newW
}

func (rules) NewWeight(input []float64, params resonance.Params) Weight {
	w := make(Weight, len(input))
	copy(w, input)
	return w
}

// Engine wraps the shared resonance state machine with Fuzzy ART's input
// contract: callers pass raw length-D vectors, and Engine complement-codes
// them into length-2D weights internally (spec.md Open Question Q2,
// resolved per-variant from the production-path weight layout: Fuzzy ART's
// weight is 2D, so its contract is "raw D-length input").
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds a Fuzzy ART engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	core := resonance.NewEngine[Weight](rules{}, params.Params)
	return &Engine{Engine: core, dim: inputDim}, nil
}

func (e *Engine) complementCode(raw []float64) ([]float64, error) {
	if len(raw) != e.dim {
		return nil, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	out := make([]float64, 2*e.dim)
	simd.Shared.ComplementCode(raw, out)
	return out, nil
}

// Learn complement-codes raw and runs one learn cycle.
func (e *Engine) Learn(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Learn(coded, params...)
}

// Predict complement-codes raw and runs one predict cycle (no mutation).
func (e *Engine) Predict(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Predict(coded, params...)
}

// InputDim returns the raw (pre-complement-coding) input dimension.
func (e *Engine) InputDim() int { return e.dim }
