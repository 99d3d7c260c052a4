package entitlement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_LimitsAndRank(t *testing.T) {
	assert.Equal(t, 20, PlanFree.MonthlyTokenLimit())
	assert.Equal(t, 500, PlanCreator.MonthlyTokenLimit())
	assert.Equal(t, 2000, PlanPro.MonthlyTokenLimit())

	assert.Equal(t, 0, PlanFree.BrandProfileLimit())
	assert.Equal(t, 1, PlanCreator.BrandProfileLimit())
	assert.Equal(t, 10, PlanPro.BrandProfileLimit())

	assert.Less(t, PlanFree.Rank(), PlanCreator.Rank())
	assert.Less(t, PlanCreator.Rank(), PlanPro.Rank())
}

func TestPlan_IsUpgradeFrom(t *testing.T) {
	assert.True(t, PlanCreator.IsUpgradeFrom(PlanFree))
	assert.True(t, PlanPro.IsUpgradeFrom(PlanCreator))
	assert.False(t, PlanPro.IsUpgradeFrom(PlanPro))
	assert.False(t, PlanFree.IsUpgradeFrom(PlanPro))
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan(" creator ")
	require.NoError(t, err)
	assert.Equal(t, PlanCreator, p)

	_, err = ParsePlan("enterprise")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestAccessTier_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Tier AccessTier `json:"tier"`
	}{AccessLimited})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"LIMITED"}`, string(b))

	var out struct {
		Tier AccessTier `json:"tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"FULL"}`), &out))
	assert.Equal(t, AccessFull, out.Tier)
	assert.Error(t, json.Unmarshal([]byte(`{"tier":"MAYBE"}`), &out))
}

func TestAccessTier_ZeroValueDenied(t *testing.T) {
	var tier AccessTier
	assert.Equal(t, AccessDenied, tier)
	assert.False(t, tier.Allowed())
	assert.True(t, AccessLimited.Allowed())
}
