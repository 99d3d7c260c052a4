package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/entitlement/dto"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type GetEntitlementsUseCase struct {
	ledger   ledger.Repository
	evaluate *EvaluateFeatureUseCase
	logger   logger.Interface
}

func NewGetEntitlementsUseCase(ledger ledger.Repository, evaluate *EvaluateFeatureUseCase, logger logger.Interface) *GetEntitlementsUseCase {
	return &GetEntitlementsUseCase{ledger: ledger, evaluate: evaluate, logger: logger}
}

func (uc *GetEntitlementsUseCase) Execute(ctx context.Context, userID string) (*dto.EntitlementsResponse, error) {
	account, err := uc.ledger.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	ents, err := uc.evaluate.ExecuteAll(ctx, account.Plan)
	if err != nil {
		uc.logger.Errorw("failed to evaluate entitlements", "error", err, "user_id", userID)
		return nil, err
	}

	return &dto.EntitlementsResponse{
		Plan:               account.Plan,
		TokensRemaining:    account.TokensRemaining,
		TokensMonthlyLimit: account.TokensMonthlyLimit,
		Entitlements:       ents,
	}, nil
}
