package simd

import (
	"math"
)

// generic implements Provider using standard Go code without SIMD. The
// AVX512 backend embeds generic to inherit the kernels it does not hand-roll;
// the Accelerate backend carries its own copies of those loops.
type generic struct{}

// FuzzyIntersectionNorm computes elementwise min between activations and weights,
// and returns the sum of the result and sum of weights
func (p *generic) FuzzyIntersectionNorm(A, w []float64, fuzzyIntersectionOut []float64) (float64, float64) {
	var fiNorm, wNorm float64

	for i := range A {
		fuzzyIntersectionOut[i] = math.Min(A[i], w[i])
		fiNorm += fuzzyIntersectionOut[i]
		wNorm += w[i]
	}

	return fiNorm, wNorm
}

// SumFloat64 computes the sum of all elements in the array
func (p *generic) SumFloat64(arr []float64) float64 {
	var sum float64
	for _, v := range arr {
		sum += v
	}
	return sum
}

// UpdateFuzzyWeights updates the mean weights in the Euclidean ART
func (p *generic) UpdateFuzzyWeights(W, fi []float64, beta float64) {
	for i := range W {
		W[i] = beta*fi[i] + (1-beta)*W[i]
	}
}

// SqrEuclidean computes the squared Euclidean distance between a and b.
func (p *generic) SqrEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// GaussianLogPDF computes the diagonal-covariance Gaussian log-likelihood
// of x under mean mu and variance variance.
func (p *generic) GaussianLogPDF(x, mu, variance []float64) float64 {
	const twoPi = 2 * math.Pi
	var sum float64
	for i := range x {
		d := x[i] - mu[i]
		sum += -0.5*(d*d)/variance[i] - 0.5*math.Log(twoPi*variance[i])
	}
	return sum
}

// Clamp01 restricts v to [0, 1].
func (p *generic) Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComplementCode writes the length-2D complement-coded vector for a
// length-D input a into out.
func (p *generic) ComplementCode(a []float64, out []float64) {
	n := len(a)
	for i, v := range a {
		out[i] = v
		out[i+n] = 1 - v
	}
}
