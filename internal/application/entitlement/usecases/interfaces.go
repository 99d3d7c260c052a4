package usecases

import (
	"context"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
)

// CostCache is the read-through cache in front of the feature_costs table.
type CostCache interface {
	Get(ctx context.Context) (entitlement.CostTable, bool, error)
	Set(ctx context.Context, costs entitlement.CostTable) error
	Invalidate(ctx context.Context) error
}
