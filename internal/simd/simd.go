// Package simd provides the numeric kernels (spec.md C1) shared by every
// ART variant's activation/match/update rules, with a scalar fallback and
// platform-accelerated backends selected at init time. Every kernel here
// must satisfy the SIMD/scalar equivalence contract of spec.md §4.1: for
// any kernel K and inputs within its declared domain,
// |K_simd(x) - K_scalar(x)| <= eps_num, where
// eps_num = max(1e-9, 16 * D * machine-epsilon * max|x_i|).
package simd

import (
	"fmt"
	"runtime"
)

// Provider defines the interface for platform-specific numeric kernels.
// Implementations must be pure functions of their inputs so the engine's
// determinism guarantees (spec.md P1, P2) hold regardless of which backend
// is selected.
type Provider interface {
	// FuzzyIntersectionNorm computes element-wise min between vectors and
	// returns norms: fuzzy_min_sum(a, b) plus the weight's own L1 norm, the
	// two quantities the fuzzy-family activation formula needs in one pass.
	FuzzyIntersectionNorm(A, w []float64, fuzzyIntersectionOut []float64) (fiNorm float64, wNorm float64)

	// SumFloat64 computes the sum of all elements in an array: l1_norm for
	// a non-negative, complement-coded vector.
	SumFloat64(arr []float64) float64

	// UpdateFuzzyWeights updates weights according to the ART learning rule
	// W[i] = beta*fi[i] + (1-beta)*W[i].
	UpdateFuzzyWeights(W, fi []float64, beta float64)

	// SqrEuclidean computes sum((a_i-b_i)^2), the kernel behind the
	// hypersphere and quadratic-neuron distance terms.
	SqrEuclidean(a, b []float64) float64

	// GaussianLogPDF computes sum(-0.5*(x_i-mu_i)^2/var_i - 0.5*log(2*pi*var_i))
	// for a diagonal-covariance Gaussian.
	GaussianLogPDF(x, mu, variance []float64) float64

	// Clamp01 restricts v to [0, 1].
	Clamp01(v float64) float64

	// ComplementCode writes out[i]=a[i], out[i+len(a)]=1-a[i], producing the
	// length-2D complement-coded vector from a length-D input.
	ComplementCode(a []float64, out []float64)
}

// Shared is the Provider selected at package init: a platform-accelerated
// backend if one is available and functional, otherwise the generic scalar
// backend.
var Shared Provider

func init() {
	Shared = GetProvider()
	if Shared == nil {
		Shared = new(generic)
	}

	fmt.Printf("Using %T on %s/%s\n", Shared, runtime.GOOS, runtime.GOARCH)
}
