package subscription

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func newWebhookFixture(t *testing.T, accounts ...*ledger.Account) (*WebhookUseCase, *memoryLedger, *mockProvider, *memoryEventLog) {
	t.Helper()
	l := newMemoryLedger(accounts...)
	p := new(mockProvider)
	events := &memoryEventLog{}
	s := NewSynchronizer(l, p, testPrices, nil, logger.NewNop())
	return NewWebhookUseCase(s, events, logger.NewNop()), l, p, events
}

func TestWebhook_SubscriptionUpdatedSyncs(t *testing.T) {
	uc, l, p, events := newWebhookFixture(t, account("u1", entitlement.PlanFree, 2, "cus_1"))
	p.On("GetCustomer", mock.Anything, "cus_1").Return(&billing.Customer{ID: "cus_1"}, nil)
	p.On("ListActiveSubscriptions", mock.Anything, "cus_1").Return([]billing.Subscription{activeSub("sub_1", "price_pro")}, nil)

	err := uc.Handle(context.Background(), billing.Event{ID: "evt_1", Type: EventSubscriptionUpdated, CustomerID: "cus_1"})
	require.NoError(t, err)

	a, _ := l.Get(context.Background(), "u1")
	assert.Equal(t, entitlement.PlanPro, a.Plan)
	assert.Equal(t, 2000, a.TokensRemaining)
	assert.True(t, events.seen["evt_1"])
}

func TestWebhook_DuplicateDeliveryIsSkipped(t *testing.T) {
	uc, _, p, _ := newWebhookFixture(t, account("u1", entitlement.PlanFree, 20, "cus_1"))
	p.On("GetCustomer", mock.Anything, "cus_1").Return(&billing.Customer{ID: "cus_1"}, nil)
	p.On("ListActiveSubscriptions", mock.Anything, "cus_1").Return([]billing.Subscription{}, nil)
	ev := billing.Event{ID: "evt_dup", Type: EventSubscriptionDeleted, CustomerID: "cus_1"}

	require.NoError(t, uc.Handle(context.Background(), ev))
	require.NoError(t, uc.Handle(context.Background(), ev))

	p.AssertNumberOfCalls(t, "ListActiveSubscriptions", 1)
}

func TestWebhook_IgnoredEvents(t *testing.T) {
	uc, _, p, events := newWebhookFixture(t)

	require.NoError(t, uc.Handle(context.Background(), billing.Event{ID: "evt_a", Type: "invoice.paid", CustomerID: "cus_1"}))
	require.NoError(t, uc.Handle(context.Background(), billing.Event{ID: "evt_b", Type: EventSubscriptionUpdated}))

	p.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	assert.Empty(t, events.seen)
}

func TestWebhook_UnknownCustomerIsAcknowledged(t *testing.T) {
	uc, _, _, events := newWebhookFixture(t)

	err := uc.Handle(context.Background(), billing.Event{ID: "evt_x", Type: EventSubscriptionCreated, CustomerID: "cus_nobody"})
	require.NoError(t, err)
	assert.True(t, events.seen["evt_x"])
}

func TestWebhook_CheckoutLinksCustomer(t *testing.T) {
	uc, l, p, _ := newWebhookFixture(t, account("u1", entitlement.PlanFree, 20, ""))
	p.On("GetCustomer", mock.Anything, "cus_new").Return(&billing.Customer{ID: "cus_new"}, nil)
	p.On("ListActiveSubscriptions", mock.Anything, "cus_new").Return([]billing.Subscription{activeSub("sub_1", "price_creator")}, nil)

	err := uc.Handle(context.Background(), billing.Event{
		ID:                "evt_co",
		Type:              EventCheckoutCompleted,
		CustomerID:        "cus_new",
		ClientReferenceID: "u1",
	})
	require.NoError(t, err)

	a, _ := l.Get(context.Background(), "u1")
	assert.Equal(t, "cus_new", a.BillingCustomerRef)
	assert.Equal(t, entitlement.PlanCreator, a.Plan)
	p.AssertNotCalled(t, "FindCustomerByEmail", mock.Anything, mock.Anything)
}

func TestWebhook_ProviderFailureAsksForRedelivery(t *testing.T) {
	uc, _, p, events := newWebhookFixture(t, account("u1", entitlement.PlanFree, 20, "cus_1"))
	p.On("GetCustomer", mock.Anything, "cus_1").Return(nil, fmt.Errorf("timeout: %w", billing.ErrProviderUnavailable))

	err := uc.Handle(context.Background(), billing.Event{ID: "evt_f", Type: EventSubscriptionUpdated, CustomerID: "cus_1"})
	assert.ErrorIs(t, err, billing.ErrProviderUnavailable)
	assert.False(t, events.seen["evt_f"])
}
