package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_DefaultMatrix(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		feature  FeatureID
		plan     Plan
		tier     AccessTier
		required Plan
		cost     int
	}{
		{FeatureThumbnail, PlanFree, AccessLimited, PlanCreator, 5},
		{FeatureThumbnail, PlanPro, AccessFull, PlanCreator, 5},
		{FeatureVideoIdeas, PlanFree, AccessFull, PlanFree, 3},
		{FeatureBrandingKit, PlanFree, AccessLimited, PlanCreator, 10},
		{FeatureNicheAnalysis, PlanFree, AccessDenied, PlanPro, 8},
		{FeatureNicheAnalysis, PlanCreator, AccessLimited, PlanPro, 8},
		{FeatureNicheAnalysis, PlanPro, AccessFull, PlanPro, 8},
		{FeatureChannelAnalytics, PlanFree, AccessDenied, PlanCreator, 0},
		{FeatureChatAssistant, PlanCreator, AccessFull, PlanFree, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.feature)+"/"+string(tt.plan), func(t *testing.T) {
			got, err := policy.Evaluate(tt.feature, tt.plan, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, got.AccessTier)
			assert.Equal(t, tt.required, got.RequiredPlanForFull)
			assert.Equal(t, tt.cost, got.TokenCost)
			assert.True(t, got.Reachable)
		})
	}
}

func TestEvaluate_EveryCellDefined(t *testing.T) {
	policy := DefaultPolicy()
	for _, f := range policy.Features() {
		for _, p := range Plans {
			got, err := policy.Evaluate(f.ID, p, nil)
			require.NoError(t, err)
			assert.Contains(t, []AccessTier{AccessFull, AccessLimited, AccessDenied}, got.AccessTier)
		}
	}
}

func TestEvaluate_UnknownFeature(t *testing.T) {
	_, err := DefaultPolicy().Evaluate("teleportation", PlanPro, nil)
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestEvaluate_UnknownPlan(t *testing.T) {
	_, err := DefaultPolicy().Evaluate(FeatureVideoIdeas, Plan("GOLD"), nil)
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestEvaluate_IsPure(t *testing.T) {
	policy := DefaultPolicy()
	costs := CostTable{FeatureThumbnail: 7}

	first, err := policy.Evaluate(FeatureThumbnail, PlanFree, costs)
	require.NoError(t, err)
	for range 100 {
		again, err := policy.Evaluate(FeatureThumbnail, PlanFree, costs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 7, first.TokenCost)
}

func TestEvaluate_CostOverrideIgnoresNegative(t *testing.T) {
	got, err := DefaultPolicy().Evaluate(FeatureBrandingKit, PlanPro, CostTable{FeatureBrandingKit: -3})
	require.NoError(t, err)
	assert.Equal(t, 10, got.TokenCost)
}

func TestEvaluate_UnreachableFullFallsBackToTopPlan(t *testing.T) {
	policy, err := NewPolicyTable(PolicyRow{
		Feature: Feature{ID: "beta_voiceover", DefaultTokenCost: 4},
		Access:  map[Plan]AccessTier{PlanPro: AccessLimited},
	})
	require.NoError(t, err)

	got, err := policy.Evaluate("beta_voiceover", PlanCreator, nil)
	require.NoError(t, err)
	assert.Equal(t, AccessDenied, got.AccessTier)
	assert.Equal(t, PlanPro, got.RequiredPlanForFull)
	assert.False(t, got.Reachable)
}

func TestEvaluateAll_CatalogOrder(t *testing.T) {
	all, err := DefaultPolicy().EvaluateAll(PlanFree, nil)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, FeatureThumbnail, all[0].Feature)
	assert.Equal(t, FeatureChannelAnalytics, all[5].Feature)
}

func TestNewPolicyTable_Rejects(t *testing.T) {
	_, err := NewPolicyTable(
		PolicyRow{Feature: Feature{ID: "a"}},
		PolicyRow{Feature: Feature{ID: "a"}},
	)
	assert.Error(t, err)

	_, err = NewPolicyTable(PolicyRow{Feature: Feature{ID: "b", DefaultTokenCost: -1}})
	assert.ErrorIs(t, err, ErrNegativeCost)

	_, err = NewPolicyTable(PolicyRow{Feature: Feature{ID: "c"}, Access: map[Plan]AccessTier{"GOLD": AccessFull}})
	assert.ErrorIs(t, err, ErrUnknownPlan)
}
