// Package falcon implements FALCON / TD-FALCON (spec.md §4.6, C9): a
// three-channel ART over complement-coded state, action and reward,
// combined into a weighted sum of per-channel fuzzy activations (channel
// weights gamma_s, gamma_a, gamma_r summing to 1), plus SARSA-style
// temporal-difference learning with eligibility traces for the TD-FALCON
// extension. Grounded on fuzzy's activation/match/update shape, replicated
// per channel; the seeded RNG for epsilon-greedy action selection uses the
// same math/rand/v2 package that internal/dataset.GetData shuffles with.
package falcon

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/internal/simd"
)

// Weight holds the three complement-coded channels of one category.
type Weight struct {
	State  []float64
	Action []float64
	Reward []float64
}

// Params extends resonance.Params with FALCON's channel weights.
type Params struct {
	resonance.Params
	GammaS, GammaA, GammaR float64
}

// DefaultParams weights the three channels equally.
func DefaultParams() Params {
	p := resonance.DefaultParams()
	return Params{Params: p, GammaS: 1.0 / 3, GammaA: 1.0 / 3, GammaR: 1.0 / 3}
}

// NewParams validates and returns a Params value.
func NewParams(vigilance, gammaS, gammaA, gammaR float64) (Params, error) {
	p := DefaultParams()
	p.Vigilance = vigilance
	p.GammaS, p.GammaA, p.GammaR = gammaS, gammaA, gammaR
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

const channelWeightTolerance = 1e-9

// Validate checks the channel weights sum to 1 in addition to the common
// fields.
func (p Params) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.GammaS < 0 || p.GammaA < 0 || p.GammaR < 0 {
		return fmt.Errorf("%w: channel weights must be >= 0", resonance.ErrParameterRange)
	}
	sum := p.GammaS + p.GammaA + p.GammaR
	if sum < 1-channelWeightTolerance || sum > 1+channelWeightTolerance {
		return fmt.Errorf("%w: gammaS+gammaA+gammaR must sum to 1, got %f", resonance.ErrParameterRange, sum)
	}
	return nil
}

// TDParams holds the TD-FALCON extension's SARSA and eligibility-trace
// controls.
type TDParams struct {
	AlphaTD float64
	GammaTD float64
	Lambda  float64
}

// DefaultTDParams picks a moderate learning rate, a 0.9 discount, and a
// short eligibility trace.
func DefaultTDParams() TDParams {
	return TDParams{AlphaTD: 0.3, GammaTD: 0.9, Lambda: 0.5}
}

// Validate checks the TD-FALCON parameters' declared ranges.
func (p TDParams) Validate() error {
	if p.AlphaTD <= 0 || p.AlphaTD > 1 {
		return fmt.Errorf("%w: alphaTD must be in (0,1], got %f", resonance.ErrParameterRange, p.AlphaTD)
	}
	if p.GammaTD < 0 || p.GammaTD > 1 {
		return fmt.Errorf("%w: gammaTD must be in [0,1], got %f", resonance.ErrParameterRange, p.GammaTD)
	}
	if p.Lambda < 0 || p.Lambda > 1 {
		return fmt.Errorf("%w: lambda must be in [0,1], got %f", resonance.ErrParameterRange, p.Lambda)
	}
	return nil
}

func fuzzyActivation(a, b []float64, alpha float64) float64 {
	fi := make([]float64, len(b))
	fiNorm, wNorm := simd.Shared.FuzzyIntersectionNorm(a, b, fi)
	return fiNorm / (alpha + wNorm)
}

func fuzzyMatch(a, b []float64) float64 {
	fi := make([]float64, len(b))
	fiNorm, _ := simd.Shared.FuzzyIntersectionNorm(a, b, fi)
	inputNorm := simd.Shared.SumFloat64(a)
	if fiNorm == 0 && inputNorm == 0 {
		return 1
	}
	return fiNorm / inputNorm
}

func fuzzyUpdate(input, w []float64, beta float64) []float64 {
	fi := make([]float64, len(w))
	simd.Shared.FuzzyIntersectionNorm(input, w, fi)
	newW := make([]float64, len(w))
	copy(newW, w)
	simd.Shared.UpdateFuzzyWeights(newW, fi, beta)
	return newW
}

type rules struct {
	gammaS, gammaA, gammaR float64
	stateLen, actionLen    int
}

func (r rules) Activation(input []float64, w Weight, params resonance.Params) float64 {
	s, a, rw := splitChannels(input, w)
	return r.gammaS*fuzzyActivation(s, w.State, params.ChoiceAlpha) +
		r.gammaA*fuzzyActivation(a, w.Action, params.ChoiceAlpha) +
		r.gammaR*fuzzyActivation(rw, w.Reward, params.ChoiceAlpha)
}

func (r rules) Match(input []float64, w Weight, params resonance.Params) float64 {
	s, a, rw := splitChannels(input, w)
	return r.gammaS*fuzzyMatch(s, w.State) + r.gammaA*fuzzyMatch(a, w.Action) + r.gammaR*fuzzyMatch(rw, w.Reward)
}

func (rules) Update(input []float64, w Weight, params resonance.Params) Weight {
	s, a, rw := splitChannels(input, w)
	return Weight{
		State:  fuzzyUpdate(s, w.State, params.LearningRate),
		Action: fuzzyUpdate(a, w.Action, params.LearningRate),
		Reward: fuzzyUpdate(rw, w.Reward, params.LearningRate),
	}
}

func (r rules) NewWeight(input []float64, params resonance.Params) Weight {
	state := make([]float64, r.stateLen)
	copy(state, input[:r.stateLen])
	action := make([]float64, r.actionLen)
	copy(action, input[r.stateLen:r.stateLen+r.actionLen])
	reward := make([]float64, len(input)-r.stateLen-r.actionLen)
	copy(reward, input[r.stateLen+r.actionLen:])
	return Weight{State: state, Action: action, Reward: reward}
}

func splitChannels(input []float64, w Weight) (state, action, reward []float64) {
	sLen, aLen := len(w.State), len(w.Action)
	return input[:sLen], input[sLen : sLen+aLen], input[sLen+aLen:]
}

// Engine wraps the shared resonance state machine over a three-channel,
// complement-coded state/action/reward input.
type Engine struct {
	mu        sync.Mutex
	core      *resonance.Engine[Weight]
	stateDim  int
	actionDim int
	params    Params
	rng       *rand.Rand
	traces    map[int]float64
	td        TDParams
}

// New builds a FALCON engine over the given raw state and action
// dimensions; the reward channel is always a single complement-coded
// scalar.
func New(stateDim, actionDim int, params Params, td TDParams, seed uint64) (*Engine, error) {
	if stateDim < 1 || actionDim < 1 {
		return nil, fmt.Errorf("%w: stateDim and actionDim must be >= 1", resonance.ErrParameterRange)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := td.Validate(); err != nil {
		return nil, err
	}
	r := rules{gammaS: params.GammaS, gammaA: params.GammaA, gammaR: params.GammaR, stateLen: 2 * stateDim, actionLen: 2 * actionDim}
	core := resonance.NewEngine[Weight](r, params.Params)
	return &Engine{
		core:      core,
		stateDim:  stateDim,
		actionDim: actionDim,
		params:    params,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		traces:    make(map[int]float64),
		td:        td,
	}, nil
}

func complementCode(raw []float64) []float64 {
	out := make([]float64, 2*len(raw))
	simd.Shared.ComplementCode(raw, out)
	return out
}

func (e *Engine) concat(state, action []float64, reward float64) ([]float64, error) {
	if len(state) != e.stateDim {
		return nil, fmt.Errorf("%w: expected state of length %d, got %d", resonance.ErrInputShape, e.stateDim, len(state))
	}
	if len(action) != e.actionDim {
		return nil, fmt.Errorf("%w: expected action of length %d, got %d", resonance.ErrInputShape, e.actionDim, len(action))
	}
	if reward < 0 || reward > 1 {
		return nil, fmt.Errorf("%w: reward must be in [0,1], got %f", resonance.ErrInputShape, reward)
	}
	s := complementCode(state)
	a := complementCode(action)
	r := complementCode([]float64{reward})
	out := make([]float64, 0, len(s)+len(a)+len(r))
	out = append(out, s...)
	out = append(out, a...)
	out = append(out, r...)
	return out, nil
}

// Learn runs one C4 cycle on the concatenated (state, action, reward)
// input.
func (e *Engine) Learn(state, action []float64, reward float64) (resonance.Outcome[Weight], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.learnLocked(state, action, reward)
}

func (e *Engine) learnLocked(state, action []float64, reward float64) (resonance.Outcome[Weight], error) {
	input, err := e.concat(state, action, reward)
	if err != nil {
		return resonance.Outcome[Weight]{}, err
	}
	return e.core.Learn(input)
}

// PredictQ returns the Q estimate read from the reward-channel center of
// the category that resonates with (state, action), bounded to [0,1].
func (e *Engine) PredictQ(state, action []float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	input, err := e.concat(state, action, 0)
	if err != nil {
		return 0, err
	}
	// Blank the reward channel: a zero-norm channel matches every category
	// (fuzzyMatch returns 1), so only state and action decide resonance.
	input[len(input)-2], input[len(input)-1] = 0, 0
	if e.core.CategoryCount() == 0 {
		return 0, nil
	}
	out, err := e.core.Predict(input)
	if err != nil {
		return 0, err
	}
	if !out.Matched() {
		return 0, nil
	}
	q := out.Weight.Reward[0]
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	return q, nil
}

// SelectAction implements epsilon-greedy action selection: with
// probability epsilon it explores uniformly; otherwise it scores every
// action in actionSpace and returns the argmax of PredictQ, ties broken by
// lowest index.
func (e *Engine) SelectAction(state []float64, actionSpace [][]float64, epsilon float64) (int, error) {
	e.mu.Lock()
	rng := e.rng
	e.mu.Unlock()

	if rng.Float64() < epsilon {
		return rng.IntN(len(actionSpace)), nil
	}

	best := -1
	bestQ := -1.0
	for i, action := range actionSpace {
		q, err := e.PredictQ(state, action)
		if err != nil {
			return 0, err
		}
		if q > bestQ {
			bestQ = q
			best = i
		}
	}
	return best, nil
}

// Step performs one TD-FALCON SARSA update: r_td = reward + gammaTD *
// Q(s', a'); the current (s, a) pair learns toward r_td, every other traced
// category's reward channel is nudged toward r_td by alphaTD times its
// trace, those traces then decay by gammaTD*lambda (dropped below 1e-6),
// and the winning category's trace resets to 1.
func (e *Engine) Step(state, action []float64, reward float64, nextState, nextAction []float64) error {
	qNext, err := e.PredictQ(nextState, nextAction)
	if err != nil {
		return err
	}
	tdTarget := reward + e.td.GammaTD*qNext
	if tdTarget > 1 {
		tdTarget = 1
	}
	if tdTarget < 0 {
		tdTarget = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	out, err := e.learnLocked(state, action, tdTarget)
	if err != nil {
		return err
	}
	winner := out.CategoryIndex

	store := e.core.StoreHandle()
	propagation := e.td.GammaTD * e.td.Lambda
	for idx, trace := range e.traces {
		if idx == winner {
			continue
		}
		w := store.Weight(idx)
		blended := make([]float64, len(w.Reward))
		for i := range blended {
			blended[i] = w.Reward[i] + e.td.AlphaTD*trace*(tdTarget-w.Reward[i])
		}
		w.Reward = blended
		store.SetWeight(idx, w)
		e.traces[idx] = trace * propagation
		if e.traces[idx] < 1e-6 {
			delete(e.traces, idx)
		}
	}
	e.traces[winner] = 1.0

	return nil
}

// CategoryCount returns the number of active categories.
func (e *Engine) CategoryCount() int { return e.core.CategoryCount() }

// Close releases the engine's resources.
func (e *Engine) Close() { e.core.Close() }

// PerformanceStats returns a snapshot of the telemetry counters (C6).
func (e *Engine) PerformanceStats() resonance.Stats { return e.core.PerformanceStats() }

// Clear empties the store and eligibility traces.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.core.Clear()
	e.traces = make(map[int]float64)
}
