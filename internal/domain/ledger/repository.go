package ledger

import (
	"context"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// SetPlanCommand is a compare-and-set plan transition. The update applies
// only while the stored plan still equals ExpectedPlan.
type SetPlanCommand struct {
	UserID          string
	ExpectedPlan    entitlement.Plan
	Plan            entitlement.Plan
	ResetBalance    bool
	Expiry          *time.Time
	CustomerRef     string
	SubscriptionRef string
	SyncedAt        time.Time
}

// Repository is the token ledger. Every balance mutation is a single
// conditional statement in the store; implementations must not read, modify
// and write a balance in application code.
type Repository interface {
	// Ensure returns the user's account, creating the FREE default if absent.
	Ensure(ctx context.Context, userID, email string) (*Account, error)
	Get(ctx context.Context, userID string) (*Account, error)
	// GetForUpdate loads the account and row-locks it until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, userID string) (*Account, error)
	FindByCustomerRef(ctx context.Context, customerRef string) (*Account, error)

	// TryDeduct subtracts amount iff the balance covers it and returns the
	// new balance. An uncovered amount yields *InsufficientBalanceError.
	TryDeduct(ctx context.Context, userID string, amount int) (int, error)
	// Refund adds amount back and returns the new balance.
	Refund(ctx context.Context, userID string, amount int) (int, error)

	// ResetToLimit sets the balance to the monthly limit unconditionally.
	ResetToLimit(ctx context.Context, userID string) error
	// ResetDue resets every account whose last reset precedes cycleStart.
	ResetDue(ctx context.Context, cycleStart time.Time) (int64, error)

	SetPlan(ctx context.Context, cmd SetPlanCommand) (*Account, error)
	AttachCustomer(ctx context.Context, userID, customerRef string) error
	// ListWithCustomer pages accounts that have a billing customer, by id.
	ListWithCustomer(ctx context.Context, afterID uint, limit int) ([]*Account, error)
}
