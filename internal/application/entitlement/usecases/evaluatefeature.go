package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// EvaluateFeatureUseCase binds the dynamic cost table to the pure evaluator.
type EvaluateFeatureUseCase struct {
	policy *entitlement.PolicyTable
	costs  *CostResolver
	logger logger.Interface
}

func NewEvaluateFeatureUseCase(policy *entitlement.PolicyTable, costs *CostResolver, logger logger.Interface) *EvaluateFeatureUseCase {
	return &EvaluateFeatureUseCase{policy: policy, costs: costs, logger: logger}
}

// Execute wraps entitlement.ErrUnknownFeature for ids outside the catalog.
func (uc *EvaluateFeatureUseCase) Execute(ctx context.Context, feature entitlement.FeatureID, plan entitlement.Plan) (entitlement.Entitlement, error) {
	if _, ok := uc.policy.Feature(feature); !ok {
		uc.logger.Errorw("evaluate called with unknown feature", "feature", feature)
		return entitlement.Entitlement{}, fmt.Errorf("%w: %s", entitlement.ErrUnknownFeature, feature)
	}

	costs, err := uc.costs.Costs(ctx)
	if err != nil {
		return entitlement.Entitlement{}, err
	}

	ent, err := uc.policy.Evaluate(feature, plan, costs)
	if err != nil {
		return entitlement.Entitlement{}, err
	}
	if !ent.Reachable {
		uc.logger.Warnw("no plan grants full access to feature", "feature", feature, "assumed_plan", ent.RequiredPlanForFull)
	}
	return ent, nil
}

func (uc *EvaluateFeatureUseCase) ExecuteAll(ctx context.Context, plan entitlement.Plan) ([]entitlement.Entitlement, error) {
	costs, err := uc.costs.Costs(ctx)
	if err != nil {
		return nil, err
	}
	return uc.policy.EvaluateAll(plan, costs)
}
