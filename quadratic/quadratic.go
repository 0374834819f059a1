// Package quadratic implements the quadratic-neuron ART variant (spec.md
// §4.2, table row "Quadratic neuron"): a category shaped by a bias vector
// b, a linear map W and an adaptive, bounded scale s, with activation
// −‖Wx−b‖²/s². Grounded on Gaussian ART's use of gonum (spec.md domain
// stack wiring names both Gaussian ART and quadratic's linear map as
// gonum/mat consumers); W is carried as a dense matrix.
package quadratic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/nnart/resonance"
)

// Weight is a quadratic neuron: bias b, linear map W (dim x dim) and scale
// s, bounded to [sMin, sMax].
type Weight struct {
	B *mat.VecDense
	W *mat.Dense
	S float64
}

// Params extends resonance.Params with the quadratic neuron's learning
// rates and scale bounds.
type Params struct {
	resonance.Params
	BetaB, BetaW, BetaS float64
	SMin, SMax          float64
	Regularization      float64
}

// DefaultParams picks conservative learning rates and a 2-decade scale
// range.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	return Params{
		Params: p,
		BetaB:  0.1, BetaW: 0.05, BetaS: 0.1,
		SMin: 0.1, SMax: 10.0,
		Regularization: 1e-6,
	}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, betaB, betaW, betaS, sMin, sMax float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.BetaB, p.BetaW, p.BetaS = betaB, betaW, betaS
	p.SMin, p.SMax = sMin, sMax
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the quadratic-specific fields in addition to the common
// ones.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.BetaB <= 0 || p.BetaB > 1 || p.BetaW <= 0 || p.BetaW > 1 || p.BetaS <= 0 || p.BetaS > 1 {
		return fmt.Errorf("%w: betaB/betaW/betaS must be in (0,1]", resonance.ErrParameterRange)
	}
	if p.SMin <= 0 || p.SMax <= p.SMin {
		return fmt.Errorf("%w: require 0 < sMin < sMax, got sMin=%f sMax=%f", resonance.ErrParameterRange, p.SMin, p.SMax)
	}
	return nil
}

type quadParams struct {
	betaB, betaW, betaS, sMin, sMax, reg float64
}

type rules struct {
	p quadParams
}

func residual(input []float64, w Weight) *mat.VecDense {
	x := mat.NewVecDense(len(input), input)
	pred := mat.NewVecDense(w.B.Len(), nil)
	pred.MulVec(w.W, x)
	r := mat.NewVecDense(w.B.Len(), nil)
	r.SubVec(pred, w.B)
	return r
}

func (r rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	res := residual(input, w)
	sq := mat.Dot(res, res)
	return -sq / (w.S * w.S)
}

// Match rescales the (non-positive) activation into (0,1], so it can be
// compared directly against a [0,1] vigilance threshold: 1 at a perfect
// fit, decreasing toward 0 as the residual grows relative to s.
func (r rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	return math.Exp(r.Activation(input, w, params))
}

func (r rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	d := w.B.Len()
	x := mat.NewVecDense(len(input), input)
	res := residual(input, w)

	newB := mat.NewVecDense(d, nil)
	newB.AddScaledVec(w.B, r.p.betaB, res)

	newW := mat.NewDense(d, d, nil)
	var grad mat.Dense
	grad.Outer(-r.p.betaW, res, x)
	newW.Add(w.W, &grad)
	if r.p.reg > 0 {
		newW.Scale(1-r.p.reg, newW)
	}

	sqNorm := mat.Dot(res, res)
	newS := w.S + r.p.betaS*(math.Sqrt(sqNorm)-w.S)
	if newS < r.p.sMin {
		newS = r.p.sMin
	}
	if newS > r.p.sMax {
		newS = r.p.sMax
	}

	return Weight{B: newB, W: newW, S: newS}
}

func (r rules) NewWeight(input []float64, params resonance.Params) Weight {
	d := len(input)
	bData := make([]float64, d)
	copy(bData, input)
	b := mat.NewVecDense(d, bData)
	w := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		w.Set(i, i, 1)
	}
	return Weight{B: b, W: w, S: (r.p.sMin + r.p.sMax) / 2}
}

// Engine wraps the shared resonance state machine over raw dense inputs.
type Engine struct {
	*resonance.Engine[Weight]
	dim int
}

// New builds a quadratic-neuron ART engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	qp := quadParams{
		betaB: params.BetaB, betaW: params.BetaW, betaS: params.BetaS,
		sMin: params.SMin, sMax: params.SMax, reg: params.Regularization,
	}
	core := resonance.NewEngine[Weight](rules{p: qp}, params.Params)
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
