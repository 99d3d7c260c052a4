// Package subscription reconciles billing provider state into the ledger.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/goroutine"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// Notifier is told about applied plan changes. Failures never affect the sync.
type Notifier interface {
	NotifyPlanChanged(ctx context.Context, account *ledger.Account, from entitlement.Plan) error
}

// PricePlans maps provider price ids to plans. Keys are matched
// case-insensitively.
type PricePlans map[string]entitlement.Plan

func NewPricePlans(raw map[string]string) (PricePlans, error) {
	out := make(PricePlans, len(raw))
	for price, name := range raw {
		plan, err := entitlement.ParsePlan(name)
		if err != nil {
			return nil, fmt.Errorf("price %q: %w", price, err)
		}
		out[strings.ToLower(price)] = plan
	}
	return out, nil
}

func (p PricePlans) Lookup(priceID string) (entitlement.Plan, bool) {
	plan, ok := p[strings.ToLower(priceID)]
	return plan, ok
}

type Synchronizer struct {
	ledger   ledger.Repository
	provider billing.Provider
	prices   PricePlans
	notifier Notifier
	group    singleflight.Group
	logger   logger.Interface
}

func NewSynchronizer(
	ledger ledger.Repository,
	provider billing.Provider,
	prices PricePlans,
	notifier Notifier,
	logger logger.Interface,
) *Synchronizer {
	return &Synchronizer{
		ledger:   ledger,
		provider: provider,
		prices:   prices,
		notifier: notifier,
		logger:   logger,
	}
}

// Sync reconciles one user's plan with the provider. When the provider is
// unreachable it returns the stored account together with an error wrapping
// billing.ErrProviderUnavailable.
//
// Concurrent calls for the same user share one provider round trip.
func (s *Synchronizer) Sync(ctx context.Context, userID string) (*ledger.Account, error) {
	v, err, _ := s.group.Do(userID, func() (any, error) {
		return s.sync(context.WithoutCancel(ctx), userID)
	})
	account, _ := v.(*ledger.Account)
	return account, err
}

// SyncCustomer syncs the account linked to a provider customer.
func (s *Synchronizer) SyncCustomer(ctx context.Context, customerRef string) (*ledger.Account, error) {
	account, err := s.ledger.FindByCustomerRef(ctx, customerRef)
	if err != nil {
		return nil, err
	}
	return s.Sync(ctx, account.UserID)
}

// Link records the provider customer for a user, typically from a completed
// checkout, then syncs.
func (s *Synchronizer) Link(ctx context.Context, userID, customerRef string) (*ledger.Account, error) {
	if err := s.ledger.AttachCustomer(ctx, userID, customerRef); err != nil {
		return nil, fmt.Errorf("failed to link billing customer: %w", err)
	}
	return s.Sync(ctx, userID)
}

func (s *Synchronizer) sync(ctx context.Context, userID string) (*ledger.Account, error) {
	account, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	customerRef, state, err := s.resolveCustomer(ctx, account)
	if err != nil {
		return s.unavailable(account, err)
	}

	var target planTarget
	switch state {
	case customerNone:
		metrics.SyncOutcomes.WithLabelValues("no_customer").Inc()
		s.logger.Debugw("no billing customer, plan unchanged", "user_id", userID, "plan", account.Plan)
		return account, nil
	case customerDeleted:
		// A deleted customer has no subscriptions.
		target = planTarget{plan: entitlement.PlanFree}
	default:
		if target, err = s.targetPlan(ctx, customerRef); err != nil {
			return s.unavailable(account, err)
		}
	}

	updated, err := s.apply(ctx, account, customerRef, target)
	if errors.Is(err, ledger.ErrPlanChanged) {
		s.logger.Infow("plan changed concurrently, retrying sync", "user_id", userID)
		if account, err = s.ledger.Get(ctx, userID); err != nil {
			return nil, err
		}
		updated, err = s.apply(ctx, account, customerRef, target)
	}
	if err != nil {
		metrics.SyncOutcomes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to apply plan: %w", err)
	}

	if updated.Plan == account.Plan {
		metrics.SyncOutcomes.WithLabelValues("unchanged").Inc()
		return updated, nil
	}

	metrics.SyncOutcomes.WithLabelValues("changed").Inc()
	metrics.PlanChanges.WithLabelValues(account.Plan.String(), updated.Plan.String()).Inc()
	s.logger.Infow("plan synchronized",
		"user_id", userID,
		"from", account.Plan,
		"to", updated.Plan,
		"tokens_remaining", updated.TokensRemaining,
	)
	s.notify(updated, account.Plan)
	return updated, nil
}

func (s *Synchronizer) load(ctx context.Context, userID string) (*ledger.Account, error) {
	account, err := s.ledger.Get(ctx, userID)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return s.ledger.Ensure(ctx, userID, "")
	}
	return account, err
}

type customerState int

const (
	customerNone customerState = iota
	customerActive
	customerDeleted
)

// resolveCustomer prefers the stored reference and falls back to an email
// lookup, persisting what it finds.
func (s *Synchronizer) resolveCustomer(ctx context.Context, account *ledger.Account) (string, customerState, error) {
	if account.HasCustomer() {
		c, err := s.provider.GetCustomer(ctx, account.BillingCustomerRef)
		if err != nil {
			return "", customerNone, err
		}
		if c == nil {
			s.logger.Warnw("stored billing customer no longer exists", "user_id", account.UserID, "customer_ref", account.BillingCustomerRef)
			return account.BillingCustomerRef, customerDeleted, nil
		}
		return account.BillingCustomerRef, customerActive, nil
	}

	if account.Email == "" {
		return "", customerNone, nil
	}
	c, err := s.provider.FindCustomerByEmail(ctx, account.Email)
	if err != nil {
		return "", customerNone, err
	}
	if c == nil {
		return "", customerNone, nil
	}

	if err := s.ledger.AttachCustomer(ctx, account.UserID, c.ID); err != nil {
		s.logger.Warnw("failed to persist billing customer", "user_id", account.UserID, "customer_ref", c.ID, "error", err)
	}
	return c.ID, customerActive, nil
}

type planTarget struct {
	plan            entitlement.Plan
	expiry          *time.Time
	subscriptionRef string
}

func (s *Synchronizer) targetPlan(ctx context.Context, customerRef string) (planTarget, error) {
	subs, err := s.provider.ListActiveSubscriptions(ctx, customerRef)
	if err != nil {
		return planTarget{}, err
	}

	target := planTarget{plan: entitlement.PlanFree}
	for _, sub := range subs {
		for _, price := range sub.PriceIDs {
			plan, ok := s.prices.Lookup(price)
			if !ok {
				s.logger.Warnw("active subscription has unmapped price", "subscription", sub.ID, "price", price)
				continue
			}
			if target.subscriptionRef == "" || plan.Rank() > target.plan.Rank() {
				end := sub.CurrentPeriodEnd
				target = planTarget{plan: plan, subscriptionRef: sub.ID}
				if !end.IsZero() {
					target.expiry = &end
				}
			}
		}
	}
	return target, nil
}

func (s *Synchronizer) apply(ctx context.Context, account *ledger.Account, customerRef string, target planTarget) (*ledger.Account, error) {
	return s.ledger.SetPlan(ctx, ledger.SetPlanCommand{
		UserID:          account.UserID,
		ExpectedPlan:    account.Plan,
		Plan:            target.plan,
		ResetBalance:    target.plan.IsUpgradeFrom(account.Plan),
		Expiry:          target.expiry,
		CustomerRef:     customerRef,
		SubscriptionRef: target.subscriptionRef,
		SyncedAt:        biztime.NowUTC(),
	})
}

func (s *Synchronizer) unavailable(account *ledger.Account, err error) (*ledger.Account, error) {
	if errors.Is(err, billing.ErrProviderUnavailable) {
		metrics.SyncOutcomes.WithLabelValues("provider_unavailable").Inc()
		s.logger.Warnw("billing provider unavailable, keeping stored plan", "user_id", account.UserID, "plan", account.Plan, "error", err)
		return account, err
	}
	metrics.SyncOutcomes.WithLabelValues("error").Inc()
	return nil, err
}

func (s *Synchronizer) notify(account *ledger.Account, from entitlement.Plan) {
	if s.notifier == nil {
		return
	}
	snapshot := *account
	goroutine.SafeGo(s.logger, "plan-change-notice", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.NotifyPlanChanged(ctx, &snapshot, from); err != nil {
			s.logger.Warnw("plan change notice failed", "user_id", snapshot.UserID, "error", err)
		}
	})
}
