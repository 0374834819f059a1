package simd

import (
	"math"
	"math/rand"
	"strconv"
	"testing"
)

func TestFuzzyIntersectionNorm(t *testing.T) {
	for _, size := range []int{7, 8, 15, 16, 31, 32, 63, 64, 127, 128, 256} {
		t.Run("size="+strconv.Itoa(size), func(t *testing.T) {
			a := make([]float64, size)
			w := make([]float64, size)
			intersection := make([]float64, size)

			var expectedSum float64
			for i := 0; i < size; i++ {
				a[i] = rand.Float64() * 10
				w[i] = rand.Float64() * 10

				// Expected intersection and sum
				minimum := math.Min(a[i], w[i])
				expectedSum += minimum
				intersection[i] = 0 // Initialize to 0 for proper comparison later
			}

			// Call our optimized function
			fiNorm, _ := Shared.FuzzyIntersectionNorm(a, w, intersection)

			// Verify sum
			if math.Abs(expectedSum-fiNorm) > 1e-10 {
				t.Errorf("FuzzyIntersectionSum should return sum %.10f, but got %.10f",
					expectedSum, fiNorm)
			}

			// Verify intersection values
			for i := 0; i < size; i++ {
				expected := math.Min(a[i], w[i])
				if math.Abs(expected-intersection[i]) > 1e-10 {
					t.Errorf("FuzzyIntersection at index %d should be %.10f, but got %.10f",
						i, expected, intersection[i])
				}
			}
		})
	}
}

func TestSumFloat64(t *testing.T) {
	for _, size := range []int{7, 8, 15, 16, 31, 32, 63, 64, 127, 128, 256} {
		t.Run("size="+strconv.Itoa(size), func(t *testing.T) {
			arr := make([]float64, size)

			var expectedSum float64
			for i := 0; i < size; i++ {
				arr[i] = rand.Float64() * 10
				expectedSum += arr[i]
			}

			// Call our optimized function
			resultSum := Shared.SumFloat64(arr)

			// Verify sum
			if math.Abs(expectedSum-resultSum) > 1e-10 {
				t.Errorf("SumFloat64 should return %.10f, but got %.10f", expectedSum, resultSum)
			}
		})
	}
}

func TestSqrEuclidean(t *testing.T) {
	for _, size := range []int{7, 8, 15, 16, 31, 32, 63, 64, 127, 128, 256} {
		t.Run("size="+strconv.Itoa(size), func(t *testing.T) {
			a := make([]float64, size)
			b := make([]float64, size)

			var expected float64
			for i := 0; i < size; i++ {
				a[i] = rand.Float64() * 10
				b[i] = rand.Float64() * 10
				d := a[i] - b[i]
				expected += d * d
			}

			got := Shared.SqrEuclidean(a, b)
			if math.Abs(expected-got) > 1e-9 {
				t.Errorf("SqrEuclidean should return %.10f, but got %.10f", expected, got)
			}
		})
	}
}

func TestGaussianLogPDF(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3}
	mu := []float64{0.1, 0.2, 0.3}
	variance := []float64{1, 1, 1}

	got := Shared.GaussianLogPDF(x, mu, variance)
	expected := -1.5 * math.Log(2*math.Pi)
	if math.Abs(expected-got) > 1e-9 {
		t.Errorf("GaussianLogPDF at the mean should return %.10f, but got %.10f", expected, got)
	}
}

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.5: 0.5, 1: 1, 2: 1}
	for in, want := range cases {
		if got := Shared.Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestComplementCode(t *testing.T) {
	a := []float64{0.2, 0.8, 0}
	out := make([]float64, 2*len(a))
	Shared.ComplementCode(a, out)

	want := []float64{0.2, 0.8, 0, 0.8, 0.2, 1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("ComplementCode[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func BenchmarkFuzzyIntersectionSum(b *testing.B) {
	benchSizes := []int{8, 64, 256, 1024, 4096}

	for _, size := range benchSizes {
		b.Run("size="+strconv.Itoa(size), func(b *testing.B) {
			a := make([]float64, size)
			w := make([]float64, size)
			intersection := make([]float64, size)

			for i := 0; i < size; i++ {
				a[i] = rand.Float64() * 10
				w[i] = rand.Float64() * 10
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Shared.FuzzyIntersectionNorm(a, w, intersection)
			}
		})
	}
}

func BenchmarkSumFloat64(b *testing.B) {
	benchSizes := []int{8, 64, 256, 1024, 4096}

	for _, size := range benchSizes {
		b.Run("size="+strconv.Itoa(size), func(b *testing.B) {
			arr := make([]float64, size)

			for i := 0; i < size; i++ {
				arr[i] = rand.Float64() * 10
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Shared.SumFloat64(arr)
			}
		})
	}
}
