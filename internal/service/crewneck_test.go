package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/knitshape/internal/domain"
	"github.com/msomdec/knitshape/internal/service"
)

func TestCrewNeckShaper_ThirdRule(t *testing.T) {
	res := service.NewCrewNeckShaper(domain.CrewNeckRuleThird).Calculate(15)

	require.True(t, res.IsValid)
	assert.Equal(t, 5, res.CastOff)
	assert.Equal(t, 5, res.EveryRowDecrease)
	assert.Equal(t, 5, res.EORDecrease)
	assert.Equal(t, 15, res.TotalRowsUsed)
	assert.Equal(t, "-5, -1/1/5, -1/2/5", res.Notation)
	assert.Equal(t, []string{
		"Cast off 5 stitches at the centre",
		"Decrease 1 stitch every 1 rows, 5 times",
		"Decrease 1 stitch every 2 rows, 5 times",
	}, res.Instructions)
	assert.Empty(t, res.Warnings)
}

func TestCrewNeckShaper_DefaultsToThirdRule(t *testing.T) {
	shaper := service.NewCrewNeckShaper("")

	assert.Equal(t, domain.CrewNeckRuleThird, shaper.Rule())
	assert.Equal(t, "-4, -1/1/4, -1/2/4", shaper.Calculate(12).Notation)
}

func TestCrewNeckShaper_QuarterRule(t *testing.T) {
	res := service.NewCrewNeckShaper(domain.CrewNeckRuleQuarter).Calculate(20)

	require.True(t, res.IsValid)
	assert.Equal(t, 5, res.CastOff)
	assert.Equal(t, 10, res.EveryRowDecrease)
	assert.Equal(t, 5, res.EORDecrease)
	assert.Equal(t, 20, res.TotalRowsUsed)
	assert.Equal(t, "-5, -1/1/10, -1/2/5", res.Notation)
}

func TestCrewNeckShaper_SmallNeckOmitsEmptyClauses(t *testing.T) {
	res := service.NewCrewNeckShaper(domain.CrewNeckRuleThird).Calculate(1)

	require.True(t, res.IsValid)
	assert.Zero(t, res.CastOff)
	assert.Zero(t, res.EveryRowDecrease)
	assert.Equal(t, 1, res.EORDecrease)
	assert.Equal(t, "-1/2/1", res.Notation)
	assert.Equal(t, []string{"Neck opening is very small for an adult garment"}, res.Warnings)
}

func TestCrewNeckShaper_InvalidInput(t *testing.T) {
	for _, total := range []int{0, -4} {
		res := service.NewCrewNeckShaper(domain.CrewNeckRuleThird).Calculate(total)

		assert.False(t, res.IsValid)
		assert.Zero(t, res.CastOff)
		assert.Zero(t, res.EveryRowDecrease)
		assert.Zero(t, res.EORDecrease)
		assert.Empty(t, res.Notation)
		require.Len(t, res.Instructions, 1)
	}
}

func TestCrewNeckShaper_SumInvariant(t *testing.T) {
	for _, rule := range []domain.CrewNeckRule{domain.CrewNeckRuleThird, domain.CrewNeckRuleQuarter} {
		shaper := service.NewCrewNeckShaper(rule)
		for total := 1; total <= 200; total++ {
			res := shaper.Calculate(total)

			require.True(t, res.IsValid)
			require.GreaterOrEqual(t, res.CastOff, 0)
			require.GreaterOrEqual(t, res.EveryRowDecrease, 0)
			require.GreaterOrEqual(t, res.EORDecrease, 0)
			require.Equal(t, total, res.CastOff+res.EveryRowDecrease+res.EORDecrease, "rule=%s total=%d", rule, total)
			require.Equal(t, res.EveryRowDecrease+2*res.EORDecrease, res.TotalRowsUsed)
		}
	}
}

func TestCrewNeckShaper_CalculateWithRuleOverridesDefault(t *testing.T) {
	shaper := service.NewCrewNeckShaper(domain.CrewNeckRuleThird)

	assert.Equal(t, "-5, -1/1/10, -1/2/5", shaper.CalculateWithRule(20, domain.CrewNeckRuleQuarter).Notation)
	assert.Equal(t, shaper.Calculate(20), shaper.CalculateWithRule(20, domain.CrewNeckRuleThird))
}
