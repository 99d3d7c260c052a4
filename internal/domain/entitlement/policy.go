package entitlement

import "fmt"

// PolicyTable is the static feature catalog plus the feature x plan matrix.
// It is immutable after construction.
type PolicyTable struct {
	features map[FeatureID]Feature
	order    []FeatureID
	matrix   map[FeatureID]map[Plan]AccessTier
}

// PolicyRow describes one feature and its tier per plan. Plans missing from
// Access are DENIED.
type PolicyRow struct {
	Feature Feature
	Access  map[Plan]AccessTier
}

// NewPolicyTable builds a table from rows, rejecting duplicates and
// negative costs.
func NewPolicyTable(rows ...PolicyRow) (*PolicyTable, error) {
	t := &PolicyTable{
		features: make(map[FeatureID]Feature, len(rows)),
		matrix:   make(map[FeatureID]map[Plan]AccessTier, len(rows)),
	}
	for _, row := range rows {
		id := row.Feature.ID
		if _, dup := t.features[id]; dup {
			return nil, fmt.Errorf("duplicate feature %q", id)
		}
		if row.Feature.DefaultTokenCost < 0 {
			return nil, fmt.Errorf("feature %q: %w", id, ErrNegativeCost)
		}
		access := make(map[Plan]AccessTier, len(row.Access))
		for plan, tier := range row.Access {
			if !plan.IsValid() {
				return nil, fmt.Errorf("feature %q: %w: %q", id, ErrUnknownPlan, plan)
			}
			access[plan] = tier
		}
		t.features[id] = row.Feature
		t.matrix[id] = access
		t.order = append(t.order, id)
	}
	return t, nil
}

// DefaultPolicy is the production matrix.
func DefaultPolicy() *PolicyTable {
	t, err := NewPolicyTable(
		PolicyRow{
			Feature: Feature{ID: FeatureThumbnail, Name: "Thumbnail generation", DefaultTokenCost: 5},
			Access:  map[Plan]AccessTier{PlanFree: AccessLimited, PlanCreator: AccessFull, PlanPro: AccessFull},
		},
		PolicyRow{
			Feature: Feature{ID: FeatureVideoIdeas, Name: "Video ideas", DefaultTokenCost: 3},
			Access:  map[Plan]AccessTier{PlanFree: AccessFull, PlanCreator: AccessFull, PlanPro: AccessFull},
		},
		PolicyRow{
			Feature: Feature{ID: FeatureBrandingKit, Name: "Branding kit", DefaultTokenCost: 10},
			Access:  map[Plan]AccessTier{PlanFree: AccessLimited, PlanCreator: AccessFull, PlanPro: AccessFull},
		},
		PolicyRow{
			Feature: Feature{ID: FeatureNicheAnalysis, Name: "Niche analysis", DefaultTokenCost: 8},
			Access:  map[Plan]AccessTier{PlanCreator: AccessLimited, PlanPro: AccessFull},
		},
		PolicyRow{
			Feature: Feature{ID: FeatureChatAssistant, Name: "Chat assistant", DefaultTokenCost: 1},
			Access:  map[Plan]AccessTier{PlanFree: AccessFull, PlanCreator: AccessFull, PlanPro: AccessFull},
		},
		PolicyRow{
			Feature: Feature{ID: FeatureChannelAnalytics, Name: "Channel analytics", DefaultTokenCost: 0},
			Access:  map[Plan]AccessTier{PlanCreator: AccessFull, PlanPro: AccessFull},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *PolicyTable) Feature(id FeatureID) (Feature, bool) {
	f, ok := t.features[id]
	return f, ok
}

// Features returns the catalog in declaration order.
func (t *PolicyTable) Features() []Feature {
	out := make([]Feature, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.features[id])
	}
	return out
}

// Tier looks up one cell. Absent cells are DENIED.
func (t *PolicyTable) Tier(id FeatureID, plan Plan) AccessTier {
	return t.matrix[id][plan]
}

// DefaultCosts returns the catalog costs as a CostTable.
func (t *PolicyTable) DefaultCosts() CostTable {
	costs := make(CostTable, len(t.features))
	for id, f := range t.features {
		costs[id] = f.DefaultTokenCost
	}
	return costs
}
