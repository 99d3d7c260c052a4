// Package billing adapts Stripe to the billing.Provider port.
package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// StripeProvider reads customers and subscriptions through the Stripe API.
type StripeProvider struct {
	api     *client.API
	timeout time.Duration
	logger  logger.Interface
}

func NewStripeProvider(secretKey string, timeout time.Duration, logger logger.Interface) *StripeProvider {
	return newStripeProvider(client.New(secretKey, nil), timeout, logger)
}

func newStripeProvider(api *client.API, timeout time.Duration, logger logger.Interface) *StripeProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StripeProvider{api: api, timeout: timeout, logger: logger}
}

func (p *StripeProvider) GetCustomer(ctx context.Context, customerID string) (*billing.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CustomerParams{}
	params.Context = ctx
	c, err := p.api.Customers.Get(customerID, params)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, p.classify("get customer", err)
	}
	if c.Deleted {
		return nil, nil
	}
	return &billing.Customer{ID: c.ID, Email: c.Email}, nil
}

func (p *StripeProvider) FindCustomerByEmail(ctx context.Context, email string) (*billing.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := p.api.Customers.List(params)
	if iter.Next() {
		c := iter.Customer()
		return &billing.Customer{ID: c.ID, Email: c.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, p.classify("list customers", err)
	}
	return nil, nil
}

func (p *StripeProvider) ListActiveSubscriptions(ctx context.Context, customerID string) ([]billing.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx

	var subs []billing.Subscription
	iter := p.api.Subscriptions.List(params)
	for iter.Next() {
		subs = append(subs, toSubscription(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, p.classify("list subscriptions", err)
	}
	return subs, nil
}

// classify marks transport failures, 5xx and 429 as ErrProviderUnavailable.
// Other API errors are request or credential problems that retrying won't fix.
func (p *StripeProvider) classify(op string, err error) error {
	if !isTransient(err) {
		p.logger.Errorw("stripe request rejected", "operation", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	p.logger.Warnw("stripe request failed", "operation", op, "error", err)
	return fmt.Errorf("%s: %w: %v", op, billing.ErrProviderUnavailable, err)
}

func isTransient(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) || stripeErr.HTTPStatusCode == 0 {
		return true
	}
	return stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
		stripeErr.HTTPStatusCode == http.StatusTooManyRequests
}

func toSubscription(s *stripe.Subscription) billing.Subscription {
	sub := billing.Subscription{
		ID:     s.ID,
		Status: string(s.Status),
	}
	if s.Customer != nil {
		sub.CustomerID = s.Customer.ID
	}
	if s.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(s.CurrentPeriodEnd, 0).UTC()
	}
	if s.Items != nil {
		for _, item := range s.Items.Data {
			if item != nil && item.Price != nil {
				sub.PriceIDs = append(sub.PriceIDs, item.Price.ID)
			}
		}
	}
	return sub
}

func isNotFound(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing
	}
	return false
}
