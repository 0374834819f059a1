package artmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/artmap"
)

func newModuleA(t *testing.T) *resonance.Engine[[]float64] {
	t.Helper()
	rules := fuzzyRules{}
	return resonance.NewEngine[[]float64](rules, resonance.DefaultParams())
}

// fuzzyRules is a minimal local stand-in for fuzzy.rules (unexported in its
// own package) so this test can build a module A without a complement-coded
// wrapper getting in the way of exercising Supervisor directly.
type fuzzyRules struct{}

func (fuzzyRules) Activation(input []float64, w []float64, params resonance.Params) float64 {
	var sum float64
	for i := range input {
		if input[i] < w[i] {
			sum += input[i]
		} else {
			sum += w[i]
		}
	}
	var wsum float64
	for _, v := range w {
		wsum += v
	}
	return sum / (params.ChoiceAlpha + wsum)
}

func (fuzzyRules) Match(input []float64, w []float64, params resonance.Params) float64 {
	var sum, inSum float64
	for i := range input {
		if input[i] < w[i] {
			sum += input[i]
		} else {
			sum += w[i]
		}
		inSum += input[i]
	}
	if sum == 0 && inSum == 0 {
		return 1
	}
	return sum / inSum
}

func (fuzzyRules) Update(input []float64, w []float64, params resonance.Params) []float64 {
	out := make([]float64, len(w))
	for i := range w {
		min := input[i]
		if w[i] < min {
			min = w[i]
		}
		out[i] = params.LearningRate*min + (1-params.LearningRate)*w[i]
	}
	return out
}

func (fuzzyRules) NewWeight(input []float64, params resonance.Params) []float64 {
	out := make([]float64, len(input))
	copy(out, input)
	return out
}

func TestFitAndPredictClassification(t *testing.T) {
	a := newModuleA(t)
	defer a.Close()

	sup, err := artmap.New[[]float64, string](a, resonance.DefaultParams(), artmap.DefaultParams())
	require.NoError(t, err)

	_, _, err = sup.Fit([]float64{1, 0, 0, 1}, "cat")
	require.NoError(t, err)
	_, _, err = sup.Fit([]float64{0, 1, 1, 0}, "dog")
	require.NoError(t, err)

	label, ok, err := sup.Predict([]float64{1, 0, 0, 1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cat", label)

	require.True(t, sup.IsTrained())
}

func TestMatchTrackingSeparatesConflictingLabels(t *testing.T) {
	a := newModuleA(t)
	defer a.Close()

	params := artmap.DefaultParams()
	params.BaselineVigilance = 0.1

	sup, err := artmap.New[[]float64, string](a, resonance.DefaultParams().WithVigilance(0.1), params)
	require.NoError(t, err)

	_, _, err = sup.Fit([]float64{1, 1, 0, 0}, "a")
	require.NoError(t, err)
	cat2, created, err := sup.Fit([]float64{0.9, 0.9, 0.1, 0.1}, "b")
	require.NoError(t, err)

	label, ok, err := sup.Predict([]float64{0.9, 0.9, 0.1, 0.1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", label)
	_ = cat2
	_ = created
}

func TestClearResetsTrainingState(t *testing.T) {
	a := newModuleA(t)
	defer a.Close()

	sup, err := artmap.New[[]float64, string](a, resonance.DefaultParams(), artmap.DefaultParams())
	require.NoError(t, err)

	_, _, err = sup.Fit([]float64{1, 0, 0, 1}, "cat")
	require.NoError(t, err)
	require.True(t, sup.IsTrained())

	sup.Clear()
	require.False(t, sup.IsTrained())
}
