package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/brand/dto"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
)

type ListBrandProfilesUseCase struct {
	repo   brand.Repository
	ledger ledger.Repository
}

func NewListBrandProfilesUseCase(repo brand.Repository, ledger ledger.Repository) *ListBrandProfilesUseCase {
	return &ListBrandProfilesUseCase{repo: repo, ledger: ledger}
}

func (uc *ListBrandProfilesUseCase) Execute(ctx context.Context, userID string) (*dto.BrandProfileListResponse, error) {
	account, err := uc.ledger.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	profiles, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand profiles: %w", err)
	}

	items := make([]*dto.BrandProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.ToBrandProfileResponse(p))
	}
	return &dto.BrandProfileListResponse{Items: items, Limit: account.Plan.BrandProfileLimit()}, nil
}
