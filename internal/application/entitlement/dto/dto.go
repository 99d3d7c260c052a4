package dto

import (
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// EntitlementsResponse is the dashboard view of what a user can do.
type EntitlementsResponse struct {
	Plan               entitlement.Plan          `json:"plan"`
	TokensRemaining    int                       `json:"tokens_remaining"`
	TokensMonthlyLimit int                       `json:"tokens_monthly_limit"`
	Entitlements       []entitlement.Entitlement `json:"entitlements"`
}

type FeatureCostResponse struct {
	Feature     entitlement.FeatureID `json:"feature"`
	Name        string                `json:"name"`
	DefaultCost int                   `json:"default_cost"`
	TokenCost   int                   `json:"token_cost"`
	Overridden  bool                  `json:"overridden"`
}

type UpdateFeatureCostRequest struct {
	TokenCost *int `json:"token_cost" binding:"required,min=0"`
}
