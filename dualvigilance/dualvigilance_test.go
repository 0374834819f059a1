package dualvigilance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/dualvigilance"
)

func TestBoundaryVsFullPass(t *testing.T) {
	params, err := dualvigilance.NewParams(0.4, 0.95, 0.01, 1.0)
	require.NoError(t, err)

	eng, err := dualvigilance.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	out, err := eng.Learn([]float64{1.0, 0.0})
	require.NoError(t, err)
	require.True(t, out.Matched())
	require.Equal(t, 0, out.CategoryIndex)

	out2, err := eng.Learn([]float64{0.6, 0.0})
	require.NoError(t, err)
	require.True(t, out2.Matched())
	require.True(t, params.IsBoundary(out2.Match) || out2.Match >= params.RhoHigh)
}

func TestRejectsBelowRhoLow(t *testing.T) {
	params, err := dualvigilance.NewParams(0.9, 0.95, 0.01, 1.0)
	require.NoError(t, err)

	eng, err := dualvigilance.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1.0, 0.0})
	require.NoError(t, err)

	out, err := eng.Predict([]float64{0.0, 1.0})
	require.NoError(t, err)
	require.False(t, out.Matched())
}

func TestRhoOrderingValidation(t *testing.T) {
	_, err := dualvigilance.NewParams(0.9, 0.5, 0.01, 1.0)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}
