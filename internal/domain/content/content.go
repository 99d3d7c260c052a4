// Package content stores artifacts produced by completed billable actions.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

var ErrNotFound = errors.New("content not found")

type GeneratedContent struct {
	ID        uint
	SID       string
	UserID    string
	Feature   entitlement.FeatureID
	Title     string
	Body      string
	Metadata  map[string]any
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, c *GeneratedContent) error
	List(ctx context.Context, userID string, feature entitlement.FeatureID, offset, limit int) ([]*GeneratedContent, int64, error)
	// Delete removes one item. Usage entries referencing it are kept.
	Delete(ctx context.Context, userID, sid string) error
}
