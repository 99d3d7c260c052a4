package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/entitlement/dto"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// ManageFeatureCostsUseCase backs the admin cost panel. Access tiers stay
// static; only costs are tunable.
type ManageFeatureCostsUseCase struct {
	policy *entitlement.PolicyTable
	repo   featurecost.Repository
	costs  *CostResolver
	logger logger.Interface
}

func NewManageFeatureCostsUseCase(policy *entitlement.PolicyTable, repo featurecost.Repository, costs *CostResolver, logger logger.Interface) *ManageFeatureCostsUseCase {
	return &ManageFeatureCostsUseCase{policy: policy, repo: repo, costs: costs, logger: logger}
}

func (uc *ManageFeatureCostsUseCase) List(ctx context.Context) ([]dto.FeatureCostResponse, error) {
	overrides, err := uc.costs.Overrides(ctx)
	if err != nil {
		return nil, err
	}

	features := uc.policy.Features()
	out := make([]dto.FeatureCostResponse, 0, len(features))
	for _, f := range features {
		cost, overridden := overrides[f.ID]
		if !overridden {
			cost = f.DefaultTokenCost
		}
		out = append(out, dto.FeatureCostResponse{
			Feature:     f.ID,
			Name:        f.Name,
			DefaultCost: f.DefaultTokenCost,
			TokenCost:   cost,
			Overridden:  overridden,
		})
	}
	return out, nil
}

func (uc *ManageFeatureCostsUseCase) Update(ctx context.Context, feature entitlement.FeatureID, cost int, adminID string) error {
	if _, ok := uc.policy.Feature(feature); !ok {
		return errors.NewNotFoundError("feature not found", feature.String())
	}
	if cost < 0 {
		return errors.NewValidationError("token cost must not be negative")
	}

	err := uc.repo.Upsert(ctx, featurecost.Override{
		Feature:   feature,
		TokenCost: cost,
		UpdatedBy: adminID,
		UpdatedAt: biztime.NowUTC(),
	})
	if err != nil {
		uc.logger.Errorw("failed to update feature cost", "error", err, "feature", feature)
		return fmt.Errorf("failed to update feature cost: %w", err)
	}
	uc.costs.Invalidate(ctx)

	uc.logger.Infow("feature cost updated", "feature", feature, "token_cost", cost, "admin_id", adminID)
	return nil
}

// Reset removes the override so the catalog default applies again.
func (uc *ManageFeatureCostsUseCase) Reset(ctx context.Context, feature entitlement.FeatureID, adminID string) error {
	if _, ok := uc.policy.Feature(feature); !ok {
		return errors.NewNotFoundError("feature not found", feature.String())
	}
	if err := uc.repo.Delete(ctx, feature); err != nil {
		return fmt.Errorf("failed to reset feature cost: %w", err)
	}
	uc.costs.Invalidate(ctx)

	uc.logger.Infow("feature cost reset to default", "feature", feature, "admin_id", adminID)
	return nil
}
