// Package artmap implements the ARTMAP supervisor (spec.md §4.4, C7): a
// single ART module A paired with a map field from A-category index to a
// supplied label, using match tracking to resolve label conflicts by
// transiently raising A's effective vigilance and restarting the search
// (spec.md: "set rho_effective,A <- match(A*) + epsilon, restart C4 on
// A"). Implemented generically over any Rules[WA] module and any
// comparable label type, since the map field only needs category identity
// and label equality, not any particular weight shape (spec.md's dense
// regression alternative for the supervised target is left to a future
// Supervisor[WA, WB] extension; DESIGN.md records this as a scoped-down
// decision, not a dropped requirement).
package artmap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nnart/resonance"
)

// Params holds ARTMAP's match-tracking controls (spec.md §4.5).
type Params struct {
	BaselineVigilance   float64
	VigilanceIncrement  float64
	MaxVigilance        float64
	MaxSearchAttempts   int
	EnableMatchTracking bool
}

// DefaultParams picks a permissive baseline with match tracking enabled.
func DefaultParams() Params {
	return Params{
		BaselineVigilance:   0.5,
		VigilanceIncrement:  0.001,
		MaxVigilance:        1.0,
		MaxSearchAttempts:   100,
		EnableMatchTracking: true,
	}
}

// Validate checks ARTMAP's parameters.
func (p Params) Validate() error {
	if p.BaselineVigilance < 0 || p.BaselineVigilance > 1 {
		return fmt.Errorf("%w: baselineVigilance must be in [0,1], got %f", resonance.ErrParameterRange, p.BaselineVigilance)
	}
	if p.VigilanceIncrement <= 0 {
		return fmt.Errorf("%w: vigilanceIncrement must be > 0, got %f", resonance.ErrParameterRange, p.VigilanceIncrement)
	}
	if p.MaxVigilance < p.BaselineVigilance || p.MaxVigilance > 1 {
		return fmt.Errorf("%w: maxVigilance must be in [baselineVigilance,1], got %f", resonance.ErrParameterRange, p.MaxVigilance)
	}
	if p.MaxSearchAttempts < 1 {
		return fmt.Errorf("%w: maxSearchAttempts must be >= 1, got %d", resonance.ErrParameterRange, p.MaxSearchAttempts)
	}
	return nil
}

// ErrSearchExhausted is returned by Fit when match tracking cannot find or
// create a category with the supplied label within MaxSearchAttempts; the
// sample is discarded (documented behavior, spec.md §4.4 step 5).
var ErrSearchExhausted = errors.New("resonance/artmap: match-tracking search exhausted")

// Supervisor pairs module A with a label map, generalized over A's weight
// type WA and any comparable label type L.
type Supervisor[WA any, L comparable] struct {
	mu       sync.Mutex
	a        *resonance.Engine[WA]
	aDefault resonance.Params
	params   Params
	labels   map[int]L
	trained  bool
}

// New builds an ARTMAP supervisor around an already-constructed module A
// (so the caller can choose the variant's Rules[WA] and input contract;
// fuzzy, binary fuzzy, and so on).
func New[WA any, L comparable](a *resonance.Engine[WA], aDefaults resonance.Params, params Params) (*Supervisor[WA, L], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Supervisor[WA, L]{
		a:        a,
		aDefault: aDefaults,
		params:   params,
		labels:   make(map[int]L),
	}, nil
}

// Fit runs one supervised learn cycle: find or create an A-category whose
// label agrees with the supplied one, using match tracking to skip
// categories with a conflicting label.
func (s *Supervisor[WA, L]) Fit(aPattern []float64, label L) (category int, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rho := s.params.BaselineVigilance
	before := s.a.CategoryCount()

	for attempt := 0; attempt < s.params.MaxSearchAttempts; attempt++ {
		probe := s.aDefault.WithVigilance(rho)
		out, perr := s.a.Predict(aPattern, probe)
		if perr != nil {
			return 0, false, perr
		}
		if !out.Matched() {
			break // no category resonates at rho; Learn below will create one
		}
		existing, ok := s.labels[out.CategoryIndex]
		if !ok || existing == label || !s.params.EnableMatchTracking {
			break // unlabeled, agreeing, or match tracking disabled: stop searching
		}
		rho = out.Match + s.params.VigilanceIncrement
		if rho > s.params.MaxVigilance {
			return 0, false, ErrSearchExhausted
		}
	}

	learnParams := s.aDefault.WithVigilance(rho)
	// Reject a conflicting winner before Learn, so the discarded sample
	// leaves module A unchanged.
	final, perr := s.a.Predict(aPattern, learnParams)
	if perr != nil {
		return 0, false, perr
	}
	if existing, ok := s.labels[final.CategoryIndex]; final.Matched() && ok && existing != label {
		return 0, false, ErrSearchExhausted
	}
	out, err := s.a.Learn(aPattern, learnParams)
	if err != nil {
		return 0, false, err
	}

	s.labels[out.CategoryIndex] = label
	s.trained = true
	return out.CategoryIndex, out.CategoryIndex == before, nil
}

// PartialFit is equivalent to repeated Fit calls without reinitialization.
func (s *Supervisor[WA, L]) PartialFit(patterns [][]float64, labels []L) error {
	if len(patterns) != len(labels) {
		return fmt.Errorf("%w: %d patterns but %d labels", resonance.ErrInputShape, len(patterns), len(labels))
	}
	for i := range patterns {
		if _, _, err := s.Fit(patterns[i], labels[i]); err != nil {
			return err
		}
	}
	return nil
}

// Predict runs module A read-only and returns the label of its winning
// category. ok is false if A is empty or no category resonates (NoMatch).
func (s *Supervisor[WA, L]) Predict(aPattern []float64) (label L, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	probe := s.aDefault.WithVigilance(s.params.BaselineVigilance)
	out, err := s.a.Predict(aPattern, probe)
	if err != nil {
		var zero L
		return zero, false, err
	}
	if !out.Matched() {
		var zero L
		return zero, false, nil
	}
	lbl, found := s.labels[out.CategoryIndex]
	return lbl, found, nil
}

// IsTrained reports whether at least one Fit call has succeeded.
func (s *Supervisor[WA, L]) IsTrained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trained
}

// Clear empties module A and the label map; IsTrained becomes false.
func (s *Supervisor[WA, L]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Clear()
	s.labels = make(map[int]L)
	s.trained = false
}

// Close releases module A's resources.
func (s *Supervisor[WA, L]) Close() { s.a.Close() }
