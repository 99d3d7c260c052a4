package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventCheckoutCompleted   = "checkout.session.completed"
)

// WebhookUseCase turns provider deliveries into syncs. Deliveries carry no
// plan state we trust; each one only triggers a fresh read from the provider.
type WebhookUseCase struct {
	sync   *Synchronizer
	events billing.EventLog
	logger logger.Interface
}

func NewWebhookUseCase(sync *Synchronizer, events billing.EventLog, logger logger.Interface) *WebhookUseCase {
	return &WebhookUseCase{sync: sync, events: events, logger: logger}
}

// Handle returns nil for ignored and duplicate events so the provider stops
// retrying them. An error asks the provider to redeliver.
func (uc *WebhookUseCase) Handle(ctx context.Context, ev billing.Event) error {
	outcome := "processed"
	defer func() {
		metrics.WebhookEvents.WithLabelValues(ev.Type, outcome).Inc()
	}()

	switch ev.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted, EventCheckoutCompleted:
	default:
		outcome = "ignored"
		uc.logger.Debugw("billing webhook ignored", "event_id", ev.ID, "type", ev.Type)
		return nil
	}

	if ev.CustomerID == "" {
		outcome = "ignored"
		uc.logger.Warnw("billing webhook without customer", "event_id", ev.ID, "type", ev.Type)
		return nil
	}

	seen, err := uc.events.IsProcessed(ctx, ev.ID)
	if err != nil {
		uc.logger.Warnw("failed to check billing event log, processing anyway", "event_id", ev.ID, "error", err)
	} else if seen {
		outcome = "duplicate"
		return nil
	}

	err = uc.dispatch(ctx, ev)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrAccountNotFound):
		outcome = "unknown_customer"
		uc.logger.Infow("billing webhook for unknown customer", "event_id", ev.ID, "customer_ref", ev.CustomerID)
	default:
		outcome = "failed"
		uc.logger.Errorw("billing webhook processing failed", "event_id", ev.ID, "type", ev.Type, "error", err)
		return err
	}

	// Marked only after success so a failed delivery is retried.
	if _, err := uc.events.MarkProcessed(ctx, ev.ID, ev.Type); err != nil {
		uc.logger.Warnw("failed to record processed billing event", "event_id", ev.ID, "error", err)
	}
	return nil
}

func (uc *WebhookUseCase) dispatch(ctx context.Context, ev billing.Event) error {
	if ev.Type == EventCheckoutCompleted && ev.ClientReferenceID != "" {
		if _, err := uc.sync.Link(ctx, ev.ClientReferenceID, ev.CustomerID); err != nil {
			return fmt.Errorf("link checkout customer: %w", err)
		}
		return nil
	}

	if _, err := uc.sync.SyncCustomer(ctx, ev.CustomerID); err != nil {
		return err
	}
	return nil
}
