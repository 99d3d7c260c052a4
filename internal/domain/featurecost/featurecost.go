// Package featurecost holds admin overrides of per-feature token costs.
package featurecost

import (
	"context"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

type Override struct {
	Feature   entitlement.FeatureID
	TokenCost int
	UpdatedBy string
	UpdatedAt time.Time
}

type Repository interface {
	List(ctx context.Context) ([]Override, error)
	Upsert(ctx context.Context, o Override) error
	Delete(ctx context.Context, feature entitlement.FeatureID) error
}
