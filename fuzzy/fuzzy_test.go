package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/fuzzy"
)

// TestDistinctCornerClustering implements spec.md scenario S1.
func TestDistinctCornerClustering(t *testing.T) {
	params, err := fuzzy.NewParams(0.5, 0.01, 1.0)
	require.NoError(t, err)

	eng, err := fuzzy.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	inputs := [][]float64{
		{0.0, 0.0},
		{0.0, 0.08},
		{0.0, 1.0},
		{1.0, 1.0},
		{1.0, 0.0},
	}

	categories := make(map[int]bool)
	for _, in := range inputs {
		out, err := eng.Learn(in)
		require.NoError(t, err)
		require.True(t, out.Matched())
		categories[out.CategoryIndex] = true
	}

	count := eng.CategoryCount()
	require.GreaterOrEqual(t, count, 2)
	require.LessOrEqual(t, count, 4)
}

// TestVigilanceMonotonicity implements spec.md scenario S4 / property P3.
func TestVigilanceMonotonicity(t *testing.T) {
	inputs := [][]float64{
		{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}, {0.7, 0.8},
	}

	var prevCount int
	for i, rho := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		params, err := fuzzy.NewParams(rho, 0.01, 1.0)
		require.NoError(t, err)
		eng, err := fuzzy.New(2, params)
		require.NoError(t, err)

		for _, in := range inputs {
			_, err := eng.Learn(in)
			require.NoError(t, err)
		}

		count := eng.CategoryCount()
		if i > 0 {
			require.GreaterOrEqual(t, count, prevCount, "category count must be non-decreasing in rho")
		}
		prevCount = count
		eng.Close()
	}
}

func TestInputShapeValidation(t *testing.T) {
	params := fuzzy.DefaultParams()
	eng, err := fuzzy.New(3, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0.1, 0.2})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestClearIdempotence(t *testing.T) {
	params := fuzzy.DefaultParams()
	eng, err := fuzzy.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0.2, 0.3})
	require.NoError(t, err)
	require.Equal(t, 1, eng.CategoryCount())

	eng.Clear()
	require.Equal(t, 0, eng.CategoryCount())

	out, err := eng.Learn([]float64{0.9, 0.1})
	require.NoError(t, err)
	require.Equal(t, 0, out.CategoryIndex)
}
