package models

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

// SubscriptionModel is the ledger row: plan plus token balance per user.
type SubscriptionModel struct {
	ID                     uint      `gorm:"primarykey"`
	UserID                 string    `gorm:"uniqueIndex;not null;size:64"`
	Email                  string    `gorm:"size:255;index"`
	Plan                   string    `gorm:"not null;size:16;default:FREE"`
	TokensRemaining        int       `gorm:"not null;default:0;check:tokens_remaining >= 0"`
	TokensMonthlyLimit     int       `gorm:"not null;default:0"`
	PlanExpiry             *time.Time
	BillingCustomerRef     *string   `gorm:"size:64;index"`
	BillingSubscriptionRef *string   `gorm:"size:64"`
	TokensResetAt          time.Time `gorm:"not null;index"`
	PlanSyncedAt           *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
