// Package dualvigilance implements DualVigilance ART (spec.md §4.2, table
// row "DualVigilance"): fuzzy-style activation and update, but gated by two
// thresholds rho_low < rho_high instead of one. A match passes the shared
// resonance loop whenever it is at or above rho_low; a match in
// [rho_low, rho_high) is a passing but "boundary" category, and a match at
// or above rho_high is a full pass. The core loop only ever compares
// against a single params.Vigilance, so rho_low is installed there; the
// finer boundary/full distinction is recovered from Outcome.Match via
// Params.IsBoundary for callers that care.
// Grounded on fuzzy.Engine's wrapper and update rule, generalized to the
// two-threshold gate.
package dualvigilance

import (
	"fmt"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is a complement-coded dense category prototype, identical in
// layout to fuzzy.Weight.
type Weight []float64

// Params extends resonance.Params with the low/high vigilance pair. The
// embedded Vigilance field is kept equal to RhoLow, since the shared
// engine's resonance loop only ever compares match against a single
// threshold; RhoHigh is consulted separately via IsBoundary.
type Params struct {
	resonance.Params
	RhoLow, RhoHigh float64
}

// DefaultParams sets a wide gap between the two thresholds.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	p.Vigilance = 0.6
	return Params{Params: p, RhoLow: 0.6, RhoHigh: 0.9}
}

// NewParams validates and returns a Params value.
func NewParams(rhoLow, rhoHigh, alpha, beta float64) (Params, error) {
	p := DefaultParams()
	p.RhoLow, p.RhoHigh = rhoLow, rhoHigh
	p.Vigilance = rhoLow
	p.ChoiceAlpha = alpha
	p.LearningRate = beta
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks rhoLow < rhoHigh in addition to the common fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.RhoLow >= p.RhoHigh {
		return fmt.Errorf("%w: require rhoLow < rhoHigh, got rhoLow=%f rhoHigh=%f", resonance.ErrParameterRange, p.RhoLow, p.RhoHigh)
	}
	if p.Vigilance != p.RhoLow {
		return fmt.Errorf("%w: vigilance must equal rhoLow", resonance.ErrParameterRange)
	}
	return nil
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

// Engine wraps the shared resonance state machine, complement-coding raw
// inputs as fuzzy.Engine does.
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds a DualVigilance ART engine over inputDim-length raw inputs.
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

// IsBoundary reports whether an outcome's match fell in [rhoLow, rhoHigh);
// a category that passed the loose threshold but not the strict one.
func (p Params) IsBoundary(match float64) bool {
	return match >= p.RhoLow && match < p.RhoHigh
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
