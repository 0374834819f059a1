package art2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/art2"
)

func TestDistinctPatternClustering(t *testing.T) {
	params, err := art2.NewParams(0.8, 0.1, 1e-6)
	require.NoError(t, err)

	eng, err := art2.New(4, params)
	require.NoError(t, err)
	defer eng.Close()

	inputs := [][]float64{
		{1, 1, 0, 0},
		{0.9, 0.95, 0.05, 0},
		{0, 0, 1, 1},
		{0, 0.05, 0.9, 1},
	}

	for _, in := range inputs {
		out, err := eng.Learn(in)
		require.NoError(t, err)
		require.True(t, out.Matched())
	}

	require.GreaterOrEqual(t, eng.CategoryCount(), 1)
	require.LessOrEqual(t, eng.CategoryCount(), 4)
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := art2.New(4, art2.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestThetaValidation(t *testing.T) {
	_, err := art2.NewParams(0.9, 1.5, 1e-6)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}

func TestRunningAverageConvergence(t *testing.T) {
	params, err := art2.NewParams(0.1, 0, 1e-6)
	require.NoError(t, err)

	eng, err := art2.New(3, params)
	require.NoError(t, err)
	defer eng.Close()

	in := []float64{1, 1, 1}
	var lastIdx int
	for i := 0; i < 5; i++ {
		out, err := eng.Learn(in)
		require.NoError(t, err)
		lastIdx = out.CategoryIndex
	}
	require.Equal(t, 0, lastIdx)
	require.Equal(t, 1, eng.CategoryCount())
}
