// Package artstar implements ARTSTAR (spec.md §4.2, table row "ARTSTAR"):
// fuzzy activation weighted by a per-category stability score, a base
// vigilance that is regulated within [rho_min, rho_max] by recent success
// rate, and periodic decay/pruning of stale categories. Wraps
// *resonance.Engine[Weight] rather than being a bare Rules[Weight]
// implementation, since vigilance regulation and pruning need state beyond
// any single category's weight (SPEC_FULL.md notes both TopoART and
// ARTSTAR need this wrapping shape). Pruning is grounded on Store.Prune,
// which tombstones rather than shifts indices (invariant I2).
package artstar

import (
	"fmt"
	"sync"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight is a complement-coded dense prototype plus a stability score in
// (0, +inf), initialized to 1 and adjusted by hits and decay.
type Weight struct {
	Vector    []float64
	Stability float64
}

// Params extends resonance.Params with ARTSTAR's stability/regulation and
// pruning controls.
type Params struct {
	resonance.Params
	StabilityBias, AdaptabilityBias float64
	RhoMin, RhoMax                  float64
	PruningThreshold                int
	MinCategoryAge                  int
	PerformanceWindowSize           int
	TargetSuccessRate               float64
	DecayRate                       float64
}

// DefaultParams picks a wide regulation band and a gentle decay rate.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	return Params{
		Params:                p,
		StabilityBias:         0.5,
		AdaptabilityBias:      0.3,
		RhoMin:                0.5,
		RhoMax:                0.95,
		PruningThreshold:      2,
		MinCategoryAge:        10,
		PerformanceWindowSize: 20,
		TargetSuccessRate:     0.7,
		DecayRate:             0.01,
	}
}

// Validate checks ARTSTAR's fields in addition to the common ones.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.StabilityBias < 0 || p.StabilityBias > 1 || p.AdaptabilityBias < 0 || p.AdaptabilityBias > 1 {
		return fmt.Errorf("%w: stabilityBias/adaptabilityBias must be in [0,1]", resonance.ErrParameterRange)
	}
	if p.RhoMin > p.Vigilance || p.Vigilance > p.RhoMax {
		return fmt.Errorf("%w: require rhoMin <= vigilance <= rhoMax, got rhoMin=%f vigilance=%f rhoMax=%f", resonance.ErrParameterRange, p.RhoMin, p.Vigilance, p.RhoMax)
	}
	if p.PruningThreshold < 0 {
		return fmt.Errorf("%w: pruningThreshold must be >= 0, got %d", resonance.ErrParameterRange, p.PruningThreshold)
	}
	if p.MinCategoryAge < 0 {
		return fmt.Errorf("%w: minCategoryAge must be >= 0, got %d", resonance.ErrParameterRange, p.MinCategoryAge)
	}
	if p.PerformanceWindowSize < 1 {
		return fmt.Errorf("%w: performanceWindowSize must be >= 1, got %d", resonance.ErrParameterRange, p.PerformanceWindowSize)
	}
	if p.TargetSuccessRate < 0 || p.TargetSuccessRate > 1 {
		return fmt.Errorf("%w: targetSuccessRate must be in [0,1], got %f", resonance.ErrParameterRange, p.TargetSuccessRate)
	}
	return nil
}

type rules struct {
	stabilityBias float64
}

func (r rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	fi := make([]float64, len(w.Vector))
	fiNorm, wNorm := simd.Shared.FuzzyIntersectionNorm(input, w.Vector, fi)
	base := fiNorm / (params.ChoiceAlpha + wNorm)
	return base * (1 - r.stabilityBias + r.stabilityBias*w.Stability)
}

func (rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	fi := make([]float64, len(w.Vector))
	fiNorm, _ := simd.Shared.FuzzyIntersectionNorm(input, w.Vector, fi)
	inputNorm := simd.Shared.SumFloat64(input)
	if fiNorm == 0 && inputNorm == 0 {
		return 1
	}
	return fiNorm / inputNorm
}

func (r rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	fi := make([]float64, len(w.Vector))
	simd.Shared.FuzzyIntersectionNorm(input, w.Vector, fi)
	newVec := make([]float64, len(w.Vector))
	copy(newVec, w.Vector)
	simd.Shared.UpdateFuzzyWeights(newVec, fi, params.LearningRate)

	newStability := w.Stability + r.stabilityBias*(1-w.Stability)
	return Weight{Vector: newVec, Stability: newStability}
}

func (rules) NewWeight(input []float64, params resonance.Params) Weight {
	v := make([]float64, len(input))
	copy(v, input)
	return Weight{Vector: v, Stability: 1.0}
}

// Engine wraps the shared resonance state machine with complement coding,
// vigilance regulation and stability-driven pruning.
type Engine struct {
	mu             sync.Mutex
	core           *resonance.Engine[Weight]
	dim            int
	params         Params
	vigilance      float64
	recentOutcomes []bool
}

// New builds an ARTSTAR engine over inputDim-length raw inputs.
func New(inputDim int, params Params) (*Engine, error) {
	if inputDim < 1 {
		return nil, fmt.Errorf("%w: inputDim must be >= 1, got %d", resonance.ErrParameterRange, inputDim)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	core := resonance.NewEngine[Weight](rules{stabilityBias: params.StabilityBias}, params.Params)
	return &Engine{core: core, dim: inputDim, params: params, vigilance: params.Vigilance}, nil
}

func (e *Engine) complementCode(raw []float64) ([]float64, error) {
	if len(raw) != e.dim {
		return nil, fmt.Errorf("%w: expected %d-length input, got %d", resonance.ErrInputShape, e.dim, len(raw))
	}
	out := make([]float64, 2*e.dim)
	simd.Shared.ComplementCode(raw, out)
	return out, nil
}

func (e *Engine) recordOutcome(success bool) {
	e.recentOutcomes = append(e.recentOutcomes, success)
	if len(e.recentOutcomes) > e.params.PerformanceWindowSize {
		e.recentOutcomes = e.recentOutcomes[1:]
	}
}

func (e *Engine) successRate() float64 {
	if len(e.recentOutcomes) == 0 {
		return e.params.TargetSuccessRate
	}
	hits := 0
	for _, ok := range e.recentOutcomes {
		if ok {
			hits++
		}
	}
	return float64(hits) / float64(len(e.recentOutcomes))
}

func (e *Engine) regulateVigilance() {
	rate := e.successRate()
	delta := (e.params.TargetSuccessRate - rate) * e.params.AdaptabilityBias
	e.vigilance -= delta
	if e.vigilance < e.params.RhoMin {
		e.vigilance = e.params.RhoMin
	}
	if e.vigilance > e.params.RhoMax {
		e.vigilance = e.params.RhoMax
	}
	e.core.Counters().IncVigilanceAdjustments()
}

// Learn complement-codes raw, regulates vigilance from recent success rate,
// runs one learn cycle and records the outcome for the next regulation
// step.
func (e *Engine) Learn(raw []float64) (resonance.Outcome[Weight], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}

	wasNewCategory := e.core.CategoryCount()
	callParams := e.params.Params
	callParams.Vigilance = e.vigilance

	out, err := e.core.Learn(coded, callParams)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}

	e.recordOutcome(out.CategoryIndex < wasNewCategory)
	e.regulateVigilance()

	return out, nil
}

// Predict complement-codes raw and runs one read-only cycle at the current
// regulated vigilance.
func (e *Engine) Predict(raw []float64) (resonance.Outcome[Weight], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	coded, err := e.complementCode(raw)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	callParams := e.params.Params
	callParams.Vigilance = e.vigilance
	return e.core.Predict(coded, callParams)
}

// Maintain applies stability decay to every active category, then prunes
// any category whose usage is below PruningThreshold and whose age exceeds
// MinCategoryAge. It returns the indices pruned in this pass.
func (e *Engine) Maintain() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	store := e.core.StoreHandle()
	active := store.ActiveIndices()
	for _, idx := range active {
		w := store.Weight(idx)
		w.Stability *= 1 - e.params.DecayRate
		store.SetWeight(idx, w)
	}
	e.core.Counters().IncStabilityRegulations(len(active))

	removed := store.Prune(func(age, usage int) bool {
		return usage >= e.params.PruningThreshold || age <= e.params.MinCategoryAge
	})
	e.core.Counters().IncPruningOperations(len(removed))
	return removed
}

// PerformanceStats returns a snapshot of the telemetry counters (C6),
// including the vigilance adjustments Learn records and the
// stability-regulation and pruning counts the maintenance pass records.
func (e *Engine) PerformanceStats() resonance.Stats {
	return e.core.PerformanceStats()
}

// CategoryCount returns the number of active (non-pruned) categories.
func (e *Engine) CategoryCount() int { return e.core.CategoryCount() }

// Vigilance returns the currently regulated vigilance value.
func (e *Engine) Vigilance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vigilance
}

// Close releases the engine's resources.
func (e *Engine) Close() { e.core.Close() }

// Clear empties the store and resets regulation state.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.core.Clear()
	e.vigilance = e.params.Vigilance
	e.recentOutcomes = nil
}
