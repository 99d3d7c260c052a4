package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/brand"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type DeleteBrandProfileUseCase struct {
	repo   brand.Repository
	logger logger.Interface
}

func NewDeleteBrandProfileUseCase(repo brand.Repository, logger logger.Interface) *DeleteBrandProfileUseCase {
	return &DeleteBrandProfileUseCase{repo: repo, logger: logger}
}

// Execute deletes one of the caller's profiles. Profiles owned by other
// users are reported as not found.
func (uc *DeleteBrandProfileUseCase) Execute(ctx context.Context, userID, sid string) error {
	err := uc.repo.Delete(ctx, userID, sid)
	if errors.Is(err, brand.ErrNotFound) {
		return apperrors.NewNotFoundError("brand profile not found", sid)
	}
	if err != nil {
		return fmt.Errorf("failed to delete brand profile: %w", err)
	}
	uc.logger.Infow("brand profile deleted", "user_id", userID, "sid", sid)
	return nil
}
