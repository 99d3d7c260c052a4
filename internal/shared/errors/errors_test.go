package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"configuration", NewConfigurationError("unknown feature"), http.StatusBadRequest, ErrorTypeConfiguration},
		{"plan", NewInsufficientPlanError("upgrade required"), http.StatusForbidden, ErrorTypeInsufficientPlan},
		{"tokens", NewInsufficientTokensError("not enough tokens"), http.StatusPaymentRequired, ErrorTypeInsufficientTokens},
		{"upstream", NewUpstreamError("provider down"), http.StatusServiceUnavailable, ErrorTypeUpstream},
		{"rate limited", NewRateLimitedError("slow down"), http.StatusTooManyRequests, ErrorTypeRateLimited},
		{"billing", NewBillingUnavailableError("stripe down"), http.StatusServiceUnavailable, ErrorTypeBillingUnavailable},
		{"unauthorized", NewUnauthorizedError("missing token"), http.StatusUnauthorized, ErrorTypeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestRetryableFlag(t *testing.T) {
	assert.True(t, NewUpstreamError("x").Retryable)
	assert.True(t, NewRateLimitedError("x").Retryable)
	assert.False(t, NewInsufficientTokensError("x").Retryable)
}

func TestGetAppError_Wrapped(t *testing.T) {
	base := NewInsufficientTokensError("not enough tokens").WithMeta("tokens_remaining", 5)
	wrapped := fmt.Errorf("deduct: %w", base)

	got := GetAppError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Meta["tokens_remaining"])
	assert.True(t, IsType(wrapped, ErrorTypeInsufficientTokens))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'u1' for key 'user_id'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: subscriptions.user_id")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}
