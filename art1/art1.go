// Package art1 implements ART-1 (spec.md §4.2, table row "ART-1"): binary
// weights, no complement coding, activation normalized by the "L" choice
// parameter (L>1), and a pure-AND update rule. Grounded on the same bitset
// approach as binaryfuzzy, without the complement-coded doubling.
package art1

import (
	"fmt"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/bitset"
)

// Weight is a binary category prototype of length D.
type Weight bitset.Set

// Params extends resonance.Params with ART-1's L (L > 1).
type Params struct {
	resonance.Params
	L float64
}

// DefaultParams uses L=2.0, the classic ART-1 choice parameter.
func DefaultParams() Params {
	return Params{Params: resonance.DefaultParams(), L: 2.0}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, l float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.L = l
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks L in addition to the common fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.L <= 1 {
		return fmt.Errorf("%w: L must be > 1, got %f", resonance.ErrParameterRange, p.L)
	}
	return nil
}

// ruleSet closes over L since resonance.Params carries only the fields
// common to every variant; New() captures it at construction time.
type ruleSet struct {
	l float64
}

func (r ruleSet) Activation(input []float64, w Weight, params resonance.Params) float64 {
	in := bitset.FromFloats(input)
	ws := bitset.Set(w)
	and := bitset.AndCount(in, ws)
	return float64(and) / (r.l + float64(ws.Count()))
}

func (r ruleSet) Match(input []float64, w Weight, params resonance.Params) float64 {
	in := bitset.FromFloats(input)
	ws := bitset.Set(w)
	and := bitset.AndCount(in, ws)
	inCount := in.Count()
	if inCount == 0 {
		return 1
	}
	return float64(and) / float64(inCount)
}

func (r ruleSet) Update(input []float64, w Weight, params resonance.Params) Weight {
	in := bitset.FromFloats(input)
	return Weight(bitset.And(in, bitset.Set(w)))
}

func (r ruleSet) NewWeight(input []float64, params resonance.Params) Weight {
	return Weight(bitset.FromFloats(input))
}

// Engine wraps the shared resonance state machine with ART-1's binary,
// non-complement-coded input contract.
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds an ART-1 engine over inputDim-length raw {0,1} inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	core := resonance.NewEngine[Weight](ruleSet{l: params.L}, params.Params)
	return &Engine{Engine: core, dim: inputDim}, nil
}

func (e *Engine) validate(raw []float64) error {
	if len(raw) != e.dim {
		return fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	for i, v := range raw {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: ART-1 requires values in {0,1}, got %v at index %d", resonance.ErrInputShape, v, i)
		}
	}
	return nil
}

// Learn runs one learn cycle over a raw binary input.
func (e *Engine) Learn(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if err := e.validate(raw); err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Learn(raw, params...)
}

// Predict runs one predict cycle over a raw binary input.
func (e *Engine) Predict(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if err := e.validate(raw); err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.Engine.Predict(raw, params...)
}
