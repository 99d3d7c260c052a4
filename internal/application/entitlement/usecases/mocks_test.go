package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
)

type mockFeatureCostRepository struct {
	mock.Mock
}

func (m *mockFeatureCostRepository) List(ctx context.Context) ([]featurecost.Override, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]featurecost.Override), args.Error(1)
}

func (m *mockFeatureCostRepository) Upsert(ctx context.Context, o featurecost.Override) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockFeatureCostRepository) Delete(ctx context.Context, feature entitlement.FeatureID) error {
	return m.Called(ctx, feature).Error(0)
}

type mockCostCache struct {
	mock.Mock
}

func (m *mockCostCache) Get(ctx context.Context) (entitlement.CostTable, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(entitlement.CostTable), args.Bool(1), args.Error(2)
}

func (m *mockCostCache) Set(ctx context.Context, costs entitlement.CostTable) error {
	return m.Called(ctx, costs).Error(0)
}

func (m *mockCostCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// stubLedger serves Get from a fixed account; other methods are unused here.
type stubLedger struct {
	ledger.Repository
	account *ledger.Account
	err     error
}

func (s *stubLedger) Get(context.Context, string) (*ledger.Account, error) {
	return s.account, s.err
}

