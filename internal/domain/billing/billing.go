// Package billing describes what the core needs from the external billing
// provider. The provider is the source of truth for plan state.
package billing

import (
	"context"
	"errors"
	"time"
)

// ErrProviderUnavailable means the provider could not be reached; callers
// keep the last-known-good plan.
var ErrProviderUnavailable = errors.New("billing provider unavailable")

type Customer struct {
	ID    string
	Email string
}

// Subscription is an active provider subscription reduced to what plan
// mapping needs.
type Subscription struct {
	ID               string
	CustomerID       string
	Status           string
	PriceIDs         []string
	CurrentPeriodEnd time.Time
}

type Provider interface {
	// GetCustomer returns nil, nil when the id does not exist (deleted customer).
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	// FindCustomerByEmail returns nil, nil when no customer has the email.
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	ListActiveSubscriptions(ctx context.Context, customerID string) ([]Subscription, error)
}

// EventLog deduplicates webhook deliveries.
type EventLog interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	// MarkProcessed records eventID and reports false if it was already recorded.
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// Event is a verified webhook delivery reduced to the customer it concerns.
type Event struct {
	ID         string
	Type       string
	CustomerID string
	// ClientReferenceID carries our user id on checkout sessions.
	ClientReferenceID string
}
