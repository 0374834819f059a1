package hypersphere_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/hypersphere"
)

func TestRadiusMonotonicallyGrows(t *testing.T) {
	params, err := hypersphere.NewParams(0.01, 100, 1.0)
	require.NoError(t, err)
	params.LearningRate = 0.5

	eng, err := hypersphere.New(2, 0, params)
	require.NoError(t, err)
	defer eng.Close()

	out, err := eng.Learn([]float64{0, 0})
	require.NoError(t, err)
	require.Equal(t, 0, out.CategoryIndex)
	r0 := out.Weight.Radius

	out, err = eng.Learn([]float64{0.1, 0.1})
	require.NoError(t, err)
	require.Equal(t, 0, out.CategoryIndex)
	r1 := out.Weight.Radius
	require.Greater(t, r1, r0)

	out, err = eng.Learn([]float64{0.2, -0.2})
	require.NoError(t, err)
	require.Equal(t, 0, out.CategoryIndex)
	require.Greater(t, out.Weight.Radius, r1)

	require.Equal(t, 1, eng.CategoryCount())
}

func TestMaxCategoriesCapacity(t *testing.T) {
	params, err := hypersphere.NewParams(0.999, 100, 1.0)
	require.NoError(t, err)

	eng, err := hypersphere.New(2, 1, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0, 0})
	require.NoError(t, err)

	_, err = eng.Learn([]float64{10, 10})
	require.ErrorIs(t, err, resonance.ErrCapacity)
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := hypersphere.New(3, 0, hypersphere.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 2})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}
