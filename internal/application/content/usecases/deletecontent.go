package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/content"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type DeleteContentUseCase struct {
	repo   content.Repository
	logger logger.Interface
}

func NewDeleteContentUseCase(repo content.Repository, logger logger.Interface) *DeleteContentUseCase {
	return &DeleteContentUseCase{repo: repo, logger: logger}
}

// Execute removes an item from the library. The usage entry that paid for
// it stays.
func (uc *DeleteContentUseCase) Execute(ctx context.Context, userID, sid string) error {
	err := uc.repo.Delete(ctx, userID, sid)
	if errors.Is(err, content.ErrNotFound) {
		return apperrors.NewNotFoundError("content not found", sid)
	}
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	uc.logger.Infow("content deleted", "user_id", userID, "sid", sid)
	return nil
}
