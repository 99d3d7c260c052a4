package usecases

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/application/content/dto"
	"github.com/creatorhub/creatorhub/internal/domain/content"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
)

type ListContentsUseCase struct {
	repo    content.Repository
	catalog *entitlement.PolicyTable
}

func NewListContentsUseCase(repo content.Repository, catalog *entitlement.PolicyTable) *ListContentsUseCase {
	return &ListContentsUseCase{repo: repo, catalog: catalog}
}

// Execute pages the caller's library, newest first. An empty feature lists
// everything.
func (uc *ListContentsUseCase) Execute(ctx context.Context, userID, feature string, offset, limit int) ([]*dto.ContentResponse, int64, error) {
	var fid entitlement.FeatureID
	if feature != "" {
		fid = entitlement.FeatureID(feature)
		if _, ok := uc.catalog.Feature(fid); !ok {
			return nil, 0, apperrors.NewValidationError("unknown feature", feature)
		}
	}

	items, total, err := uc.repo.List(ctx, userID, fid, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contents: %w", err)
	}
	return dto.ToContentResponses(items), total, nil
}
