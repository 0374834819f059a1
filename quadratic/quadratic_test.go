package quadratic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/quadratic"
)

func TestIdentityMapMatchesItsOwnInput(t *testing.T) {
	params, err := quadratic.NewParams(0.9, 0.2, 0.1, 0.2, 0.1, 10)
	require.NoError(t, err)

	eng, err := quadratic.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	out, err := eng.Learn([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, 0, out.CategoryIndex)

	out2, err := eng.Predict([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, 0, out2.CategoryIndex)
}

func TestScaleStaysWithinBounds(t *testing.T) {
	params, err := quadratic.NewParams(0.01, 0.5, 0.5, 0.9, 0.5, 2.0)
	require.NoError(t, err)

	eng, err := quadratic.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 10; i++ {
		out, err := eng.Learn([]float64{float64(i), -float64(i)})
		require.NoError(t, err)
		require.GreaterOrEqual(t, out.Weight.S, 0.5)
		require.LessOrEqual(t, out.Weight.S, 2.0)
	}
	require.Equal(t, 5, eng.CategoryCount())
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := quadratic.New(3, quadratic.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 2})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestBoundsValidation(t *testing.T) {
	_, err := quadratic.NewParams(0.5, 0.1, 0.1, 0.1, 1.0, 0.5)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}
