package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

func TestInsufficientBalanceError_Is(t *testing.T) {
	err := fmt.Errorf("deduct: %w", &InsufficientBalanceError{Required: 10, Available: 5})

	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var ibe *InsufficientBalanceError
	assert.True(t, errors.As(err, &ibe))
	assert.Equal(t, 10, ibe.Required)
	assert.Equal(t, 5, ibe.Available)
}

func TestNewDefaultAccount(t *testing.T) {
	now := time.Date(2026, 5, 3, 10, 0, 0, 0, time.UTC)
	a := NewDefaultAccount("user_1", "a@example.com", now)

	assert.Equal(t, entitlement.PlanFree, a.Plan)
	assert.Equal(t, 20, a.TokensRemaining)
	assert.Equal(t, 20, a.TokensMonthlyLimit)
	assert.Nil(t, a.PlanExpiry)
	assert.False(t, a.HasCustomer())
	assert.Equal(t, now, a.TokensResetAt)
}
