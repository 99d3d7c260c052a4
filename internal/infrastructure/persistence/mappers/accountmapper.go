package mappers

import (
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
)

func AccountToModel(a *ledger.Account) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:                     a.ID,
		UserID:                 a.UserID,
		Email:                  a.Email,
		Plan:                   a.Plan.String(),
		TokensRemaining:        a.TokensRemaining,
		TokensMonthlyLimit:     a.TokensMonthlyLimit,
		PlanExpiry:             a.PlanExpiry,
		BillingCustomerRef:     nullableString(a.BillingCustomerRef),
		BillingSubscriptionRef: nullableString(a.BillingSubscriptionRef),
		TokensResetAt:          a.TokensResetAt,
		PlanSyncedAt:           a.PlanSyncedAt,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

func AccountToEntity(m *models.SubscriptionModel) (*ledger.Account, error) {
	plan, err := entitlement.ParsePlan(m.Plan)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", m.UserID, err)
	}
	return &ledger.Account{
		ID:                     m.ID,
		UserID:                 m.UserID,
		Email:                  m.Email,
		Plan:                   plan,
		TokensRemaining:        m.TokensRemaining,
		TokensMonthlyLimit:     m.TokensMonthlyLimit,
		PlanExpiry:             m.PlanExpiry,
		BillingCustomerRef:     deref(m.BillingCustomerRef),
		BillingSubscriptionRef: deref(m.BillingSubscriptionRef),
		TokensResetAt:          m.TokensResetAt,
		PlanSyncedAt:           m.PlanSyncedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
