package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	infrabilling "github.com/creatorhub/creatorhub/internal/infrastructure/billing"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers/testutil"
)

type mockWebhookParser struct{ mock.Mock }

func (m *mockWebhookParser) Parse(payload []byte, signature string) (billing.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(billing.Event), args.Error(1)
}

type mockWebhookProcessor struct{ mock.Mock }

func (m *mockWebhookProcessor) Handle(ctx context.Context, ev billing.Event) error {
	return m.Called(ctx, ev).Error(0)
}

func TestWebhookHandler(t *testing.T) {
	ev := billing.Event{ID: "evt_1", Type: "customer.subscription.updated", CustomerID: "cus_1"}

	tests := []struct {
		name       string
		parseErr   error
		handleErr  error
		wantStatus int
	}{
		{"processed", nil, nil, http.StatusOK},
		{"bad signature", fmt.Errorf("%w: mismatch", infrabilling.ErrInvalidSignature), nil, http.StatusBadRequest},
		{"processing failed", nil, billing.ErrProviderUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(mockWebhookParser)
			parser.On("Parse", []byte(`{"id":"evt_1"}`), "t=1,v1=abc").Return(ev, tt.parseErr)
			processor := new(mockWebhookProcessor)
			processor.On("Handle", mock.Anything, ev).Return(tt.handleErr)
			h := NewWebhookHandler(parser, processor, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/webhooks/stripe", []byte(`{"id":"evt_1"}`))
			c.Request.Header.Set("Stripe-Signature", "t=1,v1=abc")
			h.HandleStripe(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.parseErr != nil {
				processor.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			}
		})
	}
}
