//go:build darwin && arm64

package accelerate

import (
	"math"
	"unsafe"
)

/*
#cgo CFLAGS: -O3
#cgo LDFLAGS: -framework Accelerate
#include <Accelerate/Accelerate.h>

double accelerate_fuzzy_intersection_norm(const size_t n, double *A, double *w, double *fuzzy_intersection_out, double *w_norm_out) {
    // Compute min(A[i], w[i])
    vDSP_vminD(A, 1, w, 1, fuzzy_intersection_out, 1, n);

    // Sum the min values
    double intersection_norm = 0.0;
    vDSP_sveD(fuzzy_intersection_out, 1, &intersection_norm, n);

    // Sum the w values directly into w_sum_out
    vDSP_sveD(w, 1, w_norm_out, n);

    return intersection_norm;
}

double accelerate_sum(const size_t n, double *arr) {
    double sum = 0.0;
    vDSP_sveD(arr, 1, &sum, n);

    return sum;
}

// update_fuzzy_weights updates weights using the formula:
// weights[i] = beta * fi[i] + (1-beta) * weights[i]
void update_fuzzy_weights(double* weights, const double* fi, double beta, int length) {
    // Use Apple's Accelerate framework for optimized vector operations on macOS

    // Compute beta * fi into a temporary buffer or in-place
    // Since vDSP operates on all elements at once, we need these operations

    // Step 1: Compute beta * fi
    vDSP_vsmulD(fi, 1, &beta, weights, 1, length);

    // Step 2: Compute (1-beta) * weights and add to the result
    double oneminusbeta = 1.0 - beta;
    vDSP_vsmaD(weights, 1, &oneminusbeta, weights, 1, weights, 1, length);
}

// accelerate_sqr_euclidean computes sum((a[i]-b[i])^2) via vDSP's distance-squared primitive.
double accelerate_sqr_euclidean(const size_t n, double *a, double *b) {
    double out = 0.0;
    vDSP_distancesqD(a, 1, b, 1, &out, n);
    return out;
}
*/
import "C"

// Accelerate implements Provider with Apple's Accelerate framework for the
// kernels vDSP covers well (fuzzy intersection, sums, weight update,
// squared Euclidean distance). GaussianLogPDF, Clamp01 and ComplementCode
// are plain Go: vDSP has no direct equivalent worth the cgo call overhead
// for the log() or branch they require, and this package cannot import
// simd's generic provider (simd imports accelerate, not the reverse), so
// they are implemented locally instead of shared.
type Accelerate struct{}

func (p *Accelerate) FuzzyIntersectionNorm(A, w []float64, fuzzyIntersectionOut []float64) (float64, float64) {
	var wNormOut C.double
	fiNormOut := C.accelerate_fuzzy_intersection_norm(
		(C.size_t)(len(A)),
		(*C.double)(&A[0]),
		(*C.double)(&w[0]),
		(*C.double)(&fuzzyIntersectionOut[0]),
		&wNormOut,
	)

	return float64(fiNormOut), float64(wNormOut)
}

func (p *Accelerate) SumFloat64(arr []float64) float64 {
	sum := C.accelerate_sum(
		(C.size_t)(len(arr)),
		(*C.double)(&arr[0]),
	)

	return float64(sum)
}

func (p *Accelerate) UpdateFuzzyWeights(weights []float64, fi []float64, beta float64) {
	weightsPtr := (*C.double)(unsafe.Pointer(&weights[0]))
	fiPtr := (*C.double)(unsafe.Pointer(&fi[0]))
	C.update_fuzzy_weights(weightsPtr, fiPtr, C.double(beta), C.int(len(weights)))
}

// SqrEuclidean computes the squared Euclidean distance via vDSP_distancesqD.
func (p *Accelerate) SqrEuclidean(a, b []float64) float64 {
	sum := C.accelerate_sqr_euclidean(
		(C.size_t)(len(a)),
		(*C.double)(&a[0]),
		(*C.double)(&b[0]),
	)
	return float64(sum)
}

// GaussianLogPDF computes the diagonal-covariance Gaussian log-likelihood.
func (p *Accelerate) GaussianLogPDF(x, mu, variance []float64) float64 {
	const twoPi = 2 * math.Pi
	var sum float64
	for i := range x {
		d := x[i] - mu[i]
		sum += -0.5*(d*d)/variance[i] - 0.5*math.Log(twoPi*variance[i])
	}
	return sum
}

// Clamp01 restricts v to [0, 1].
func (p *Accelerate) Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComplementCode writes the length-2D complement-coded vector for a for a
// length-D input a into out.
func (p *Accelerate) ComplementCode(a []float64, out []float64) {
	n := len(a)
	for i, v := range a {
		out[i] = v
		out[i+n] = 1 - v
	}
}
