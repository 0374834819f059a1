package artstar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nnart/resonance"
	"github.com/nnart/resonance/artstar"
)

func TestLearnCommitsAndRegulatesVigilance(t *testing.T) {
	params := artstar.DefaultParams()
	params.Vigilance = 0.8
	params.TargetSuccessRate = 0.5
	params.AdaptabilityBias = 0.5

	eng, err := artstar.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 5; i++ {
		_, err := eng.Learn([]float64{float64(i) * 0.1, 1 - float64(i)*0.1})
		require.NoError(t, err)
	}

	v := eng.Vigilance()
	require.GreaterOrEqual(t, v, params.RhoMin)
	require.LessOrEqual(t, v, params.RhoMax)
}

func TestMaintainPrunesLowUsageOldCategories(t *testing.T) {
	params := artstar.DefaultParams()
	params.PruningThreshold = 5
	params.MinCategoryAge = 0

	eng, err := artstar.New(2, params)
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{0, 1})
	require.NoError(t, err)
	_, err = eng.Learn([]float64{1, 0})
	require.NoError(t, err)

	before := eng.CategoryCount()
	removed := eng.Maintain()
	require.NotEmpty(t, removed)
	require.Less(t, eng.CategoryCount(), before)
}

func TestInputShapeValidation(t *testing.T) {
	eng, err := artstar.New(3, artstar.DefaultParams())
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Learn([]float64{1, 0})
	require.ErrorIs(t, err, resonance.ErrInputShape)
}

func TestRhoBoundsValidation(t *testing.T) {
	p := artstar.DefaultParams()
	p.Vigilance = 2
	_, err := artstar.New(2, p)
	require.ErrorIs(t, err, resonance.ErrParameterRange)
}
