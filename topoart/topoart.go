// Package topoart implements TopoART (spec.md §4.2, table row "TopoART"):
// two coupled fuzzy-style components, A (fast, low vigilance) and B (slow,
// high vigilance), plus an edge graph connecting successive A winners. B
// only learns when its A counterpart has won at least phi times within the
// last tau learn cycles (sufficient support), and an edge is recorded
// between the current and the immediately preceding A winner. This module
// wraps two *resonance.Engine[Weight] instances rather than implementing
// Rules[Weight] directly (SPEC_FULL.md notes TopoART's two-component,
// graph-building shape does not fit the single-category Rules contract).
// Grounded on fuzzy.Engine's complement-coding wrapper, reused for both
// components.
package topoart

import (
	"fmt"
	"sync"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is a complement-coded dense category prototype, as in fuzzy ART.
type Weight []float64

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

// Params holds per-component vigilance plus TopoART's phi/tau support rule
// and B's learning rate.
type Params struct {
	VigilanceA, VigilanceB float64
	ChoiceAlpha            float64
	Phi, Tau               int
	BetaSecond             float64
}

// DefaultParams picks A looser than B, requiring 2 wins within the last 5
// learn cycles before B updates.
func DefaultParams() Params {
	return Params{VigilanceA: 0.7, VigilanceB: 0.9, ChoiceAlpha: 0.01, Phi: 2, Tau: 5, BetaSecond: 0.3}
}

// Validate checks TopoART's parameters.
func (p Params) Validate() error {
	if p.VigilanceA < 0 || p.VigilanceA > 1 || p.VigilanceB < 0 || p.VigilanceB > 1 {
		return fmt.Errorf("%w: vigilanceA/vigilanceB must be in [0,1]", resonance.ErrParameterRange)
	}
	if p.ChoiceAlpha <= 0 {
		return fmt.Errorf("%w: choiceAlpha must be > 0, got %f", resonance.ErrParameterRange, p.ChoiceAlpha)
	}
	if p.Phi < 1 {
		return fmt.Errorf("%w: phi must be >= 1, got %d", resonance.ErrParameterRange, p.Phi)
	}
	if p.Tau < 1 {
		return fmt.Errorf("%w: tau must be >= 1, got %d", resonance.ErrParameterRange, p.Tau)
	}
	if p.BetaSecond <= 0 || p.BetaSecond > 1 {
		return fmt.Errorf("%w: betaSecond must be in (0,1], got %f", resonance.ErrParameterRange, p.BetaSecond)
	}
	return nil
}

type edgeKey [2]int

func normalizedEdge(a, b int) edgeKey {
	if a <= b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Engine couples component A and B plus the topology edge graph.
type Engine struct {
	mu          sync.Mutex
	a           *resonance.Engine[Weight]
	b           *resonance.Engine[Weight]
	dim         int
	params      Params
	cycle       int
	winCycles   map[int][]int
	edges       map[edgeKey]int
	lastWinnerA int
}

// New builds a TopoART engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	paramsA := resonance.DefaultParams()
	paramsA.Vigilance = params.VigilanceA
	paramsA.ChoiceAlpha = params.ChoiceAlpha
	paramsA.LearningRate = 1.0

	paramsB := resonance.DefaultParams()
	paramsB.Vigilance = params.VigilanceB
	paramsB.ChoiceAlpha = params.ChoiceAlpha
	paramsB.LearningRate = params.BetaSecond

	return &Engine{
		a:           resonance.NewEngine[Weight](rules{}, paramsA),
		b:           resonance.NewEngine[Weight](rules{}, paramsB),
		dim:         inputDim,
		params:      params,
		winCycles:   make(map[int][]int),
		edges:       make(map[edgeKey]int),
		lastWinnerA: -1,
	}, nil
}

func (e *Engine) complementCode(raw []float64) ([]float64, error) {
	if len(raw) != e.dim {
		return nil, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	out := make([]float64, 2*e.dim)
	simd.Shared.ComplementCode(raw, out)
	return out, nil
}

func (e *Engine) recentWinCount(category int) int {
	cycles := e.winCycles[category]
	count := 0
	for _, c := range cycles {
		if e.cycle-c < e.params.Tau {
			count++
		}
	}
	return count
}

// Learn runs one coupled A/B learn cycle and updates the edge graph.
func (e *Engine) Learn(raw []float64, overrideParams ...resonance.Params) (resonance.Outcome[Weight], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}

	e.cycle++
	outA, err := e.a.Learn(coded, overrideParams...)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}

	e.winCycles[outA.CategoryIndex] = append(e.winCycles[outA.CategoryIndex], e.cycle)
	if e.recentWinCount(outA.CategoryIndex) >= e.params.Phi {
		if _, err := e.b.Learn(coded); err != nil {
			return resonance.Outcome[Weight]{}, err
		}
	}

	if e.lastWinnerA >= 0 && e.lastWinnerA != outA.CategoryIndex {
		key := normalizedEdge(e.lastWinnerA, outA.CategoryIndex)
		e.edges[key]++
		e.a.Counters().IncTopologyAdjustments()
	}
	e.lastWinnerA = outA.CategoryIndex

	return outA, nil
}

// Predict runs a read-only A-component cycle.
func (e *Engine) Predict(raw []float64, overrideParams ...resonance.Params) (resonance.Outcome[Weight], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.a.Predict(coded, overrideParams...)
}

// CategoryCountA returns the number of committed A categories.
func (e *Engine) CategoryCountA() int { return e.a.CategoryCount() }

// CategoryCountB returns the number of committed B categories.
func (e *Engine) CategoryCountB() int { return e.b.CategoryCount() }

// PerformanceStats returns a snapshot of component A's telemetry counters
// (C6), including the topology-adjustment count edge recording bumps. B's
// counters are tracked separately and not surfaced here.
func (e *Engine) PerformanceStats() resonance.Stats {
	return e.a.PerformanceStats()
}

// EdgeCount returns the number of distinct edges recorded between A
// categories.
func (e *Engine) EdgeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.edges)
}

// HasEdge reports whether an edge has been recorded between A categories i
// and j.
func (e *Engine) HasEdge(i, j int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.edges[normalizedEdge(i, j)]
	return ok
}

// Close releases both components' resources.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.a.Close()
	e.b.Close()
}

// Clear empties both components and the edge graph.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.a.Clear()
	e.b.Clear()
	e.cycle = 0
	e.winCycles = make(map[int][]int)
	e.edges = make(map[edgeKey]int)
	e.lastWinnerA = -1
}
