package topoart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/topoart"
)

func TestBComponentLearnsOnlyAfterSupport(t *testing.T) {
	params := topoart.DefaultParams()
	params.Phi = 3
	params.Tau = 10

	eng, err := topoart.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	in := []float64{0.5, 0.5}
	for i := 0; i < 2; i++ {
		_, err := eng.Learn(in)
		require.NoError(t, err)
	}
	require.Equal(t, 0, eng.CategoryCountB())

	_, err = eng.Learn(in)
	require.NoError(t, err)
	require.Equal(t, 1, eng.CategoryCountB())
}

func TestEdgeRecordedBetweenSuccessiveWinners(t *testing.T) {
	eng, err := topoart.New(2, topoart.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0.0, 0.0})
	require.NoError(t, err)
	_, err = eng.Learn([]float64{1.0, 1.0})
	require.NoError(t, err)

	require.Equal(t, 2, eng.CategoryCountA())
	require.True(t, eng.HasEdge(0, 1))
	require.Equal(t, 1, eng.EdgeCount())
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := topoart.New(3, topoart.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestPhiTauValidation(t *testing.T) {
	p := topoart.DefaultParams()
	p.Phi = 0
	_, err := topoart.New(2, p)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}
