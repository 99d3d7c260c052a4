// Package usage is the append-only record of billable actions.
package usage

import (
	"context"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// Entry records one successful deduction. Entries are never updated or
// deleted, so they survive deletion of the content they describe.
type Entry struct {
	ID         uint
	UserID     string
	Action     string
	Feature    entitlement.FeatureID
	TokensUsed int
	Metadata   map[string]any
	CreatedAt  time.Time
}

type Filter struct {
	UserID  string
	Feature entitlement.FeatureID
	From    time.Time
	To      time.Time
	Offset  int
	Limit   int
}

// FeatureSummary aggregates entries of one feature.
type FeatureSummary struct {
	Feature    entitlement.FeatureID `json:"feature"`
	Actions    int64                 `json:"actions"`
	TokensUsed int64                 `json:"tokens_used"`
}

type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int64, error)
	Summarize(ctx context.Context, userID string, from, to time.Time) ([]FeatureSummary, error)
}
