package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func newManage(repo *mockFeatureCostRepository, cache *mockCostCache) *ManageFeatureCostsUseCase {
	policy := entitlement.DefaultPolicy()
	return NewManageFeatureCostsUseCase(policy, repo, NewCostResolver(policy, repo, cache, logger.NewNop()), logger.NewNop())
}

func TestManageFeatureCosts_UpdateInvalidatesCache(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(o featurecost.Override) bool {
		return o.Feature == entitlement.FeatureThumbnail && o.TokenCost == 4 && o.UpdatedBy == "admin-1"
	})).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	err := newManage(repo, cache).Update(context.Background(), entitlement.FeatureThumbnail, 4, "admin-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestManageFeatureCosts_UpdateRejects(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	uc := newManage(repo, cache)

	err := uc.Update(context.Background(), "warp_drive", 1, "admin-1")
	assert.True(t, apperrors.IsNotFoundError(err))

	err = uc.Update(context.Background(), entitlement.FeatureThumbnail, -1, "admin-1")
	assert.True(t, apperrors.IsValidationError(err))

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestManageFeatureCosts_List(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	cache.On("Get", mock.Anything).Return(entitlement.CostTable{entitlement.FeatureBrandingKit: 15}, true, nil)

	items, err := newManage(repo, cache).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 6)

	for _, it := range items {
		if it.Feature == entitlement.FeatureBrandingKit {
			assert.True(t, it.Overridden)
			assert.Equal(t, 15, it.TokenCost)
			assert.Equal(t, 10, it.DefaultCost)
		} else {
			assert.False(t, it.Overridden)
			assert.Equal(t, it.DefaultCost, it.TokenCost)
		}
	}
}

func TestManageFeatureCosts_Reset(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	repo.On("Delete", mock.Anything, entitlement.FeatureVideoIdeas).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	require.NoError(t, newManage(repo, cache).Reset(context.Background(), entitlement.FeatureVideoIdeas, "admin-1"))
	repo.AssertExpectations(t)
}
