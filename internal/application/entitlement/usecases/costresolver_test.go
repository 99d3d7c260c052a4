package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func TestCostResolver_CacheHit(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	cache.On("Get", mock.Anything).Return(entitlement.CostTable{entitlement.FeatureThumbnail: 7}, true, nil)

	r := NewCostResolver(entitlement.DefaultPolicy(), repo, cache, logger.NewNop())
	costs, err := r.Costs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, costs[entitlement.FeatureThumbnail])
	assert.Equal(t, 3, costs[entitlement.FeatureVideoIdeas])
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCostResolver_MissPopulatesCache(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	repo.On("List", mock.Anything).Return([]featurecost.Override{{Feature: entitlement.FeatureChatAssistant, TokenCost: 2}}, nil)
	cache.On("Set", mock.Anything, entitlement.CostTable{entitlement.FeatureChatAssistant: 2}).Return(nil)

	r := NewCostResolver(entitlement.DefaultPolicy(), repo, cache, logger.NewNop())
	costs, err := r.Costs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, costs[entitlement.FeatureChatAssistant])
	cache.AssertExpectations(t)
}

func TestCostResolver_CacheErrorFallsBackToDatabase(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	cache := new(mockCostCache)
	cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	repo.On("List", mock.Anything).Return([]featurecost.Override{}, nil)

	r := NewCostResolver(entitlement.DefaultPolicy(), repo, cache, logger.NewNop())
	costs, err := r.Costs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entitlement.DefaultPolicy().DefaultCosts(), costs)
}

func TestCostResolver_NoCacheAndRepoError(t *testing.T) {
	repo := new(mockFeatureCostRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	r := NewCostResolver(entitlement.DefaultPolicy(), repo, nil, logger.NewNop())
	_, err := r.Costs(context.Background())
	assert.Error(t, err)
}
