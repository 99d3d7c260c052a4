// Package entitlement holds the static feature-access policy and the pure
// evaluator that answers "what may this plan do with this feature".
package entitlement

import (
	"fmt"
	"strings"
)

// Plan is a subscription tier. Plans are totally ordered by Rank.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanCreator Plan = "CREATOR"
	PlanPro     Plan = "PRO"
)

// Plans lists every plan in ascending rank.
var Plans = []Plan{PlanFree, PlanCreator, PlanPro}

var planLimits = map[Plan]struct {
	rank          int
	monthlyTokens int
	brandProfiles int
}{
	PlanFree:    {rank: 0, monthlyTokens: 20, brandProfiles: 0},
	PlanCreator: {rank: 1, monthlyTokens: 500, brandProfiles: 1},
	PlanPro:     {rank: 2, monthlyTokens: 2000, brandProfiles: 10},
}

func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, s)
	}
	return p, nil
}

func (p Plan) IsValid() bool {
	_, ok := planLimits[p]
	return ok
}

func (p Plan) String() string {
	return string(p)
}

// Rank orders plans FREE < CREATOR < PRO. Unknown plans rank below FREE.
func (p Plan) Rank() int {
	if l, ok := planLimits[p]; ok {
		return l.rank
	}
	return -1
}

// MonthlyTokenLimit is the balance a reset restores for this plan.
func (p Plan) MonthlyTokenLimit() int {
	return planLimits[p].monthlyTokens
}

// BrandProfileLimit is how many brand profiles the plan may own.
func (p Plan) BrandProfileLimit() int {
	return planLimits[p].brandProfiles
}

// IsUpgradeFrom reports a strict rank increase; only upgrades reset the balance.
func (p Plan) IsUpgradeFrom(old Plan) bool {
	return p.Rank() > old.Rank()
}
