package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/brand/dto"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/constants"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/id"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// CreateBrandProfileUseCase enforces the per-plan profile count.
type CreateBrandProfileUseCase struct {
	repo   brand.Repository
	ledger ledger.Repository
	tx     TransactionRunner
	logger logger.Interface
}

func NewCreateBrandProfileUseCase(repo brand.Repository, ledger ledger.Repository, tx TransactionRunner, logger logger.Interface) *CreateBrandProfileUseCase {
	return &CreateBrandProfileUseCase{
		repo:   repo,
		ledger: ledger,
		tx:     tx,
		logger: logger,
	}
}

// Execute locks the caller's ledger row before counting, so parallel creates
// for one user serialize and cannot both pass the limit.
func (uc *CreateBrandProfileUseCase) Execute(ctx context.Context, userID string, req dto.CreateBrandProfileRequest) (*dto.BrandProfileResponse, error) {
	sid, err := id.GenerateWithPrefix(constants.PrefixBrandProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate brand profile id: %w", err)
	}
	profile, err := brand.NewBrandProfile(sid, userID, req.Name, req.Niche, req.Tone, req.Colors, biztime.NowUTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var plan entitlement.Plan
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		account, err := uc.ledger.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		plan = account.Plan

		count, err := uc.repo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if count >= int64(plan.BrandProfileLimit()) {
			return brand.ErrLimitReached
		}
		return uc.repo.Create(ctx, profile)
	})
	if errors.Is(err, brand.ErrLimitReached) {
		limit := plan.BrandProfileLimit()
		uc.logger.Infow("brand profile limit reached", "user_id", userID, "plan", plan, "limit", limit)
		return nil, apperrors.NewInsufficientPlanError(
			fmt.Sprintf("your %s plan allows %d brand profiles", plan, limit),
		).WithMeta("limit", limit)
	}
	if err != nil {
		uc.logger.Errorw("failed to create brand profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to create brand profile: %w", err)
	}

	uc.logger.Infow("brand profile created", "user_id", userID, "sid", profile.SID())
	return dto.ToBrandProfileResponse(profile), nil
}
