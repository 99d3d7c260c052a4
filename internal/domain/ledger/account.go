// Package ledger defines the per-user token balance and plan record and the
// atomic operations allowed on it.
package ledger

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// Account is a read snapshot of a user's ledger row. Balances change only
// through Repository operations, never by mutating an Account.
type Account struct {
	ID                     uint
	UserID                 string
	Email                  string
	Plan                   entitlement.Plan
	TokensRemaining        int
	TokensMonthlyLimit     int
	PlanExpiry             *time.Time
	BillingCustomerRef     string
	BillingSubscriptionRef string
	TokensResetAt          time.Time
	PlanSyncedAt           *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewDefaultAccount is the row created on a user's first authenticated request.
func NewDefaultAccount(userID, email string, now time.Time) *Account {
	return &Account{
		UserID:             userID,
		Email:              email,
		Plan:               entitlement.PlanFree,
		TokensRemaining:    entitlement.PlanFree.MonthlyTokenLimit(),
		TokensMonthlyLimit: entitlement.PlanFree.MonthlyTokenLimit(),
		TokensResetAt:      now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// HasCustomer reports whether the account is linked to a billing customer.
func (a *Account) HasCustomer() bool {
	return a.BillingCustomerRef != ""
}
