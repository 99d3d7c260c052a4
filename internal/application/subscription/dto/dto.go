package dto

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/ledger"
)

// SubscriptionResponse is the user-facing view of a ledger account.
type SubscriptionResponse struct {
	Plan               string     `json:"plan"`
	TokensRemaining    int        `json:"tokens_remaining"`
	TokensMonthlyLimit int        `json:"tokens_monthly_limit"`
	BrandProfileLimit  int        `json:"brand_profile_limit"`
	PlanExpiry         *time.Time `json:"plan_expiry,omitempty"`
	NextResetAt        time.Time  `json:"next_reset_at"`
	PlanSyncedAt       *time.Time `json:"plan_synced_at,omitempty"`
	BillingLinked      bool       `json:"billing_linked"`
}

func ToSubscriptionResponse(a *ledger.Account, nextReset time.Time) *SubscriptionResponse {
	return &SubscriptionResponse{
		Plan:               a.Plan.String(),
		TokensRemaining:    a.TokensRemaining,
		TokensMonthlyLimit: a.TokensMonthlyLimit,
		BrandProfileLimit:  a.Plan.BrandProfileLimit(),
		PlanExpiry:         a.PlanExpiry,
		NextResetAt:        nextReset,
		PlanSyncedAt:       a.PlanSyncedAt,
		BillingLinked:      a.HasCustomer(),
	}
}
