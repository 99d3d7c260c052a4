package subscription

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/subscription/dto"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
)

type GetSubscriptionUseCase struct {
	ledger ledger.Repository
}

func NewGetSubscriptionUseCase(ledger ledger.Repository) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{ledger: ledger}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	account, err := uc.ledger.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return dto.ToSubscriptionResponse(account, biztime.NextCycleStartUTC(biztime.NowUTC())), nil
}
