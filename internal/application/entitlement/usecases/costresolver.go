package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// CostResolver produces the effective cost table: catalog defaults
// overlaid with admin overrides. Overrides are read from the cache first;
// a cache failure falls back to the database.
type CostResolver struct {
	policy *entitlement.PolicyTable
	repo   featurecost.Repository
	cache  CostCache
	logger logger.Interface
}

// NewCostResolver accepts a nil cache, in which case every call hits the
// repository.
func NewCostResolver(policy *entitlement.PolicyTable, repo featurecost.Repository, cache CostCache, logger logger.Interface) *CostResolver {
	return &CostResolver{policy: policy, repo: repo, cache: cache, logger: logger}
}

func (r *CostResolver) Costs(ctx context.Context) (entitlement.CostTable, error) {
	overrides, err := r.overrides(ctx)
	if err != nil {
		return nil, err
	}

	costs := r.policy.DefaultCosts()
	for f, c := range overrides {
		if _, known := r.policy.Feature(f); !known {
			r.logger.Warnw("ignoring cost override for unknown feature", "feature", f)
			continue
		}
		costs[f] = c
	}
	return costs, nil
}

// Overrides returns only the admin-set costs.
func (r *CostResolver) Overrides(ctx context.Context) (entitlement.CostTable, error) {
	return r.overrides(ctx)
}

func (r *CostResolver) overrides(ctx context.Context) (entitlement.CostTable, error) {
	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx)
		if err != nil {
			r.logger.Warnw("feature cost cache read failed, using database", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	rows, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature costs: %w", err)
	}
	overrides := make(entitlement.CostTable, len(rows))
	for _, row := range rows {
		overrides[row.Feature] = row.TokenCost
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, overrides); err != nil {
			r.logger.Warnw("failed to populate feature cost cache", "error", err)
		}
	}
	return overrides, nil
}

// Invalidate drops cached overrides after an admin write.
func (r *CostResolver) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		r.logger.Warnw("failed to invalidate feature cost cache", "error", err)
	}
}
