// Package binaryfuzzy implements binary fuzzy ART (spec.md §4.2, table row
// "Binary fuzzy"): the same complement-coded layout as fuzzy.Weight but
// restricted to {0,1}, backed by internal/bitset so the min/sum the fuzzy
// rule needs become machine popcount (spec.md DESIGN NOTES, "Binary
// weights"). Grounded on fuzzy.Engine's wrapper shape, generalized from
// float weights to a bitset.
package binaryfuzzy

import (
	"fmt"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/bitset"
)

// Weight is a complement-coded binary category prototype: length 2*D bits.
type Weight bitset.Set

// Params extends the common resonance.Params; binary fuzzy ART uses the
// same fields as fuzzy ART (Vigilance, ChoiceAlpha, LearningRate), with
// LearningRate == 1 selecting the fast AND-commitment rule.
type Params struct {
	resonance.Params
}

// DefaultParams uses beta=1 (fast commitment), matching the table's "(β=1)"
// default update rule.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	p.LearningRate = 1
	return Params{Params: p}
}

// NewParams validates and returns a Params value.
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
	in := bitset.FromFloats(input)
	ws := bitset.Set(w)
	and := bitset.AndCount(in, ws)
	return float64(and) / (params.ChoiceAlpha + float64(ws.Count()))
}

func (rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	in := bitset.FromFloats(input)
	ws := bitset.Set(w)
	and := bitset.AndCount(in, ws)
	inCount := in.Count()
	if and == 0 && inCount == 0 {
		return 1
	}
	return float64(and) / float64(inCount)
}

func (rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	in := bitset.FromFloats(input)
	ws := bitset.Set(w)
	if params.LearningRate >= 1 {
		return Weight(bitset.And(in, ws))
	}
	// Slow learning: blend as floats, rebinarize at the 0.5 threshold.
	inF, wF := input, ws.ToFloats()
	blended := make([]float64, len(wF))
	for i := range wF {
		blended[i] = params.LearningRate*min01(inF[i], wF[i]) + (1-params.LearningRate)*wF[i]
	}
	out := bitset.New(len(blended))
	for i, v := range blended {
		if v >= 0.5 {
			out.Set(i)
		}
	}
	return Weight(out)
}

func min01(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func (rules) NewWeight(input []float64, params resonance.Params) Weight {
	return Weight(bitset.FromFloats(input))
}

// Engine wraps the shared resonance state machine, complement-coding raw
// length-D {0,1} inputs into length-2D bitsets.
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds a binary fuzzy ART engine over inputDim-length raw {0,1} inputs.
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
	for i, v := range raw {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: binary fuzzy ART requires values in {0,1}, got %v at index %d", resonance.ErrInputShape, v, i)
		}
		out[i] = v
		out[i+e.dim] = 1 - v
	}
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
