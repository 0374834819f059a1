// Package hypersphere implements Hypersphere ART (spec.md §4.2, table row
// "Hypersphere"): a center-plus-radius category that can only grow, never
// shrink (invariant I4), capped by a per-variant radius ceiling.
package hypersphere

import (
	"fmt"
	"math"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is a hypersphere category: a center and a monotonically
// non-decreasing radius.
type Weight struct {
	Center []float64
	Radius float64
}

// Params extends resonance.Params with Hypersphere ART's radius controls.
type Params struct {
	resonance.Params
	RadiusCap       float64
	ExpansionFactor float64
}

// DefaultParams picks an expansion factor of 1 (tight fit) and an
// unbounded-in-practice radius cap.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	return Params{Params: p, RadiusCap: math.MaxFloat64, ExpansionFactor: 1.0}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, radiusCap, expansionFactor float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.RadiusCap = radiusCap
	p.ExpansionFactor = expansionFactor
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the radius controls in addition to the common fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.RadiusCap <= 0 {
		return fmt.Errorf("%w: radiusCap must be > 0, got %f", resonance.ErrParameterRange, p.RadiusCap)
	}
	if p.ExpansionFactor < 1 {
		return fmt.Errorf("%w: expansionFactor must be >= 1, got %f", resonance.ErrParameterRange, p.ExpansionFactor)
	}
	return nil
}

type hyperParams struct {
	radiusCap, expansionFactor float64
}

type rules struct {
	p hyperParams
}

func distance(a, b []float64) float64 {
	return math.Sqrt(simd.Shared.SqrEuclidean(a, b))
}

func (r rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	return 1.0 / (1.0 + distance(input, w.Center))
}

// Match returns a similarity in (0, 1]: 1 at the center, shrinking toward 0
// as distance grows, so the shared engine's m >= Vigilance test resonates on
// near points and rejects far ones (a plain distance ratio grows away from
// the center and would invert the test).
func (r rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	d := distance(input, w.Center)
	denom := w.Radius + params.ChoiceAlpha
	return denom / (denom + d)
}

func (r rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	newCenter := make([]float64, len(w.Center))
	for i := range newCenter {
		newCenter[i] = w.Center[i] + params.LearningRate*(input[i]-w.Center[i])
	}
	d := distance(input, newCenter) * r.p.expansionFactor
	newRadius := w.Radius
	if d > newRadius {
		newRadius = d
	}
	if newRadius > r.p.radiusCap {
		newRadius = r.p.radiusCap
	}
	return Weight{Center: newCenter, Radius: newRadius}
}

func (r rules) NewWeight(input []float64, params resonance.Params) Weight {
	center := make([]float64, len(input))
	copy(center, input)
	return Weight{Center: center, Radius: 0}
}

// Engine wraps the shared resonance state machine over raw dense inputs.
type Engine struct {
	*resonance.Engine[Weight]
	dim         int
	maxCategory int
}

// New builds a Hypersphere ART engine. maxCategories == 0 means unbounded;
// a negative value is a parameter error.
func New(inputDim int, maxCategories int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDimensions must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if maxCategories < 0 {
		return nil, fmt.Errorf("%w: maxCategories must be >= 0, got %d", resonance.ErrParameterRange, maxCategories)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	hp := hyperParams{radiusCap: params.RadiusCap, expansionFactor: params.ExpansionFactor}
	core := resonance.NewEngine[Weight](rules{p: hp}, params.Params)
	return &Engine{Engine: core, dim: inputDim, maxCategory: maxCategories}, nil
}

// Learn runs one learn cycle, subject to the configured maxCategories cap.
func (e *Engine) Learn(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if len(raw) != e.dim {
		return resonance.Outcome[Weight]{}, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	out, err := e.Engine.Predict(raw, params...)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	if !out.Matched() && e.maxCategory > 0 && e.CategoryCount() >= e.maxCategory {
		return resonance.Outcome[Weight]{}, fmt.Errorf("%w: at maxCategories=%d", resonance.ErrCapacity, e.maxCategory)
	}
	return e.Engine.Learn(raw, params...)
}

// Predict runs one predict cycle over a raw input.
func (e *Engine) Predict(raw []float64, params ...resonance.Params) (resonance.Outcome[Weight], error) {
	if len(raw) != e.dim {
		return resonance.Outcome[Weight]{}, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	return e.Engine.Predict(raw, params...)
}
