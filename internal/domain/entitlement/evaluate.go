package entitlement

import "fmt"

// CostTable maps features to their current token cost. Features missing
// from the table fall back to the catalog default.
type CostTable map[FeatureID]int

// Entitlement is the evaluator's answer.
type Entitlement struct {
	Feature             FeatureID  `json:"feature" yaml:"feature"`
	Plan                Plan       `json:"plan" yaml:"plan"`
	AccessTier          AccessTier `json:"access_tier" yaml:"access_tier"`
	RequiredPlanForFull Plan       `json:"required_plan_for_full" yaml:"required_plan_for_full"`
	TokenCost           int        `json:"token_cost" yaml:"token_cost"`
	// Reachable is false when no plan grants FULL; RequiredPlanForFull then
	// falls back to the top plan.
	Reachable bool `json:"reachable" yaml:"reachable"`
}

// Evaluate is a pure function of (feature, plan, costs): it performs no I/O
// and the same inputs always yield the same Entitlement.
func (t *PolicyTable) Evaluate(id FeatureID, plan Plan, costs CostTable) (Entitlement, error) {
	f, ok := t.features[id]
	if !ok {
		return Entitlement{}, fmt.Errorf("%w: %q", ErrUnknownFeature, id)
	}
	if !plan.IsValid() {
		return Entitlement{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}

	cost := f.DefaultTokenCost
	if c, ok := costs[id]; ok && c >= 0 {
		cost = c
	}

	required, reachable := t.requiredPlanForFull(id)
	return Entitlement{
		Feature:             id,
		Plan:                plan,
		AccessTier:          t.Tier(id, plan),
		RequiredPlanForFull: required,
		TokenCost:           cost,
		Reachable:           reachable,
	}, nil
}

// EvaluateAll evaluates every catalog feature for plan in catalog order.
func (t *PolicyTable) EvaluateAll(plan Plan, costs CostTable) ([]Entitlement, error) {
	out := make([]Entitlement, 0, len(t.order))
	for _, id := range t.order {
		e, err := t.Evaluate(id, plan, costs)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (t *PolicyTable) requiredPlanForFull(id FeatureID) (Plan, bool) {
	for _, p := range Plans {
		if t.matrix[id][p] == AccessFull {
			return p, true
		}
	}
	return Plans[len(Plans)-1], false
}
