package binaryfuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/binaryfuzzy"
)

func TestBinaryPatternSeparation(t *testing.T) {
	params, err := binaryfuzzy.NewParams(0.9, 0.01, 1.0)
	require.NoError(t, err)

	eng, err := binaryfuzzy.New(4, params)
	require.NoError(t, err)
	defer eng.Close()

	out1, err := eng.Learn([]float64{1, 1, 0, 0})
	require.NoError(t, err)
	require.True(t, out1.Matched())

	out2, err := eng.Learn([]float64{0, 0, 1, 1})
	require.NoError(t, err)
	require.True(t, out2.Matched())
	require.NotEqual(t, out1.CategoryIndex, out2.CategoryIndex)

	require.Equal(t, 2, eng.CategoryCount())

	pred, err := eng.Predict([]float64{1, 1, 0, 0})
	require.NoError(t, err)
	require.Equal(t, out1.CategoryIndex, pred.CategoryIndex)
}

func TestSlowLearningBlendsAndRebinarizes(t *testing.T) {
	params, err := binaryfuzzy.NewParams(0.1, 0.01, 0.5)
	require.NoError(t, err)

	eng, err := binaryfuzzy.New(3, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 1, 1})
	require.NoError(t, err)
	out, err := eng.Learn([]float64{1, 1, 0})
	require.NoError(t, err)
	require.True(t, out.Matched())
	require.Equal(t, 0, out.CategoryIndex)
	require.Equal(t, 1, eng.CategoryCount())
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := binaryfuzzy.New(3, binaryfuzzy.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestNonBinaryInputRejected(t *testing.T) {
	eng, err := binaryfuzzy.New(2, binaryfuzzy.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0.5, 1})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}
