package falcon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/falcon"
)

func TestLearnAndPredictQ(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0}, []float64{0, 1}, 0.9)
	require.NoError(t, err)

	q, err := eng.PredictQ([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.9, q, 0.2)
	require.GreaterOrEqual(t, q, 0.0)
	require.LessOrEqual(t, q, 1.0)
}

func TestPredictQEmptyEngineReturnsZero(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.NoError(t, err)
	defer eng.Close()

	q, err := eng.PredictQ([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, q)
}

func TestSelectActionGreedyTieBreaksOnLowestIndex(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.NoError(t, err)
	defer eng.Close()

	actionSpace := [][]float64{{0, 1}, {1, 0}}
	idx, err := eng.SelectAction([]float64{1, 0}, actionSpace, 0.0)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestSelectActionExploresUnderFullEpsilon(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 7)
	require.NoError(t, err)
	defer eng.Close()

	actionSpace := [][]float64{{0, 1}, {1, 0}, {1, 1}}
	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		idx, err := eng.SelectAction([]float64{0, 1}, actionSpace, 1.0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, len(actionSpace))
		seen[idx] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestStepPropagatesEligibilityTraces(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 3)
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Step([]float64{1, 0}, []float64{0, 1}, 0.0, []float64{0, 1}, []float64{1, 0}))
	require.NoError(t, eng.Step([]float64{0, 1}, []float64{1, 0}, 1.0, []float64{1, 0}, []float64{0, 1}))

	require.GreaterOrEqual(t, eng.CategoryCount(), 1)

	q, err := eng.PredictQ([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	require.GreaterOrEqual(t, q, 0.0)
	require.LessOrEqual(t, q, 1.0)
}

func TestStateActionShapeValidation(t *testing.T) {
	eng, err := falcon.New(3, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0}, []float64{0, 1}, 0.5)
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestRewardRangeValidation(t *testing.T) {
	eng, err := falcon.New(2, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0}, []float64{0, 1}, 1.5)
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestChannelWeightSumValidation(t *testing.T) {
	_, err := falcon.NewParams(0.8, 0.5, 0.5, 0.5)
	require.ErrorIs(t, err, resonance.ErrParameterRange)

	p, err := falcon.NewParams(0.8, 0.5, 0.3, 0.2)
	require.NoError(t, err)
	require.Equal(t, 0.5, p.GammaS)
}

func TestTDParamsValidation(t *testing.T) {
	td := falcon.DefaultTDParams()
	td.AlphaTD = 0
	require.ErrorIs(t, td.Validate(), resonance.ErrParameterRange)

	td = falcon.DefaultTDParams()
	td.GammaTD = 1.5
	require.ErrorIs(t, td.Validate(), resonance.ErrParameterRange)

	td = falcon.DefaultTDParams()
	td.Lambda = -0.1
	require.ErrorIs(t, td.Validate(), resonance.ErrParameterRange)
}

func TestDimensionValidation(t *testing.T) {
	_, err := falcon.New(0, 2, falcon.DefaultParams(), falcon.DefaultTDParams(), 1)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}
