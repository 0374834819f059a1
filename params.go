package resonance

import "fmt"

// Params holds the fields common to every ART variant (spec.md §4.5).
// Variant packages embed Params and add their own fields; each variant's
// constructor validates the embedded Params plus its own extensions before
// returning, per invariant I7: a bad parameter fails construction, never a
// learning call.
type Params struct {
	// Vigilance is the minimum match required for a category to absorb an
	// input. Higher vigilance yields more, smaller categories.
	Vigilance float64

	// LearningRate (beta) controls how far a committed category's weight
	// moves toward the input on each update.
	LearningRate float64

	// ChoiceAlpha (alpha) biases the activation choice function away from
	// categories with very small weight norms.
	ChoiceAlpha float64

	// ParallelismLevel bounds the number of scan workers used when
	// categoryCount >= ParallelThreshold.
	ParallelismLevel int

	// ParallelThreshold is the category count at or above which the scan is
	// sharded across ParallelismLevel workers.
	ParallelThreshold int

	// MaxCacheSize caps the CacheSize value reported in Stats: 0 reports 0,
	// otherwise the reported size is min(category count, MaxCacheSize). The
	// scan keeps no activation cache; each call computes every active
	// category's activation once, whatever this value is.
	MaxCacheSize int

	// EnableSIMD gates the SIMDOperations and SIMDUtilization counters. The
	// numeric backend itself is chosen once, at package initialization of
	// internal/simd, from the CPU's features; this flag does not switch a
	// running engine to the generic (scalar) backend.
	EnableSIMD bool

	// MemoryOptimizationThreshold, in (0, 1], is consulted by variants that
	// support a reduced-memory weight representation above a given category
	// count fraction; unused by variants that do not offer one.
	MemoryOptimizationThreshold float64
}

// DefaultParams returns a Params value with conservative, documented
// defaults (rho=0.86, alpha=0.01, beta=1.0).
func DefaultParams() Params {
	return Params{
		Vigilance:                   0.86,
		LearningRate:                1.0,
		ChoiceAlpha:                 0.01,
		ParallelismLevel:            1,
		ParallelThreshold:           64,
		MaxCacheSize:                0,
		EnableSIMD:                  true,
		MemoryOptimizationThreshold: 1.0,
	}
}

// Validate checks the common fields. Variant Params types call this from
// their own Validate before checking their own extensions.
func (p Params) Validate() error {
	if p.Vigilance < 0 || p.Vigilance > 1 {
		return fmt.Errorf("%w: vigilance must be in [0,1], got %f", ErrParameterRange, p.Vigilance)
	}
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return fmt.Errorf("%w: learningRate must be in (0,1], got %f", ErrParameterRange, p.LearningRate)
	}
	if p.ChoiceAlpha <= 0 {
		return fmt.Errorf("%w: choiceAlpha must be > 0, got %f", ErrParameterRange, p.ChoiceAlpha)
	}
	if p.ParallelismLevel < 1 {
		return fmt.Errorf("%w: parallelismLevel must be >= 1, got %d", ErrParameterRange, p.ParallelismLevel)
	}
	if p.ParallelThreshold < 1 {
		return fmt.Errorf("%w: parallelThreshold must be >= 1, got %d", ErrParameterRange, p.ParallelThreshold)
	}
	if p.MaxCacheSize < 0 {
		return fmt.Errorf("%w: maxCacheSize must be >= 0, got %d", ErrParameterRange, p.MaxCacheSize)
	}
	if p.MemoryOptimizationThreshold <= 0 || p.MemoryOptimizationThreshold > 1 {
		return fmt.Errorf("%w: memoryOptimizationThreshold must be in (0,1], got %f", ErrParameterRange, p.MemoryOptimizationThreshold)
	}
	return nil
}

// WithVigilance returns a copy of p with Vigilance replaced. The new value
// is not validated; callers that need a checked value call Validate.
func (p Params) WithVigilance(rho float64) Params {
	p.Vigilance = rho
	return p
}

// WithLearningRate returns a copy of p with LearningRate replaced.
func (p Params) WithLearningRate(beta float64) Params {
	p.LearningRate = beta
	return p
}

// WithParallelism returns a copy of p with ParallelismLevel and
// ParallelThreshold replaced.
func (p Params) WithParallelism(level, threshold int) Params {
	p.ParallelismLevel = level
	p.ParallelThreshold = threshold
	return p
}
