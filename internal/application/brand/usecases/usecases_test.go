package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/application/brand/dto"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/id"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) Create(ctx context.Context, p *brand.BrandProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockBrandRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBrandRepository) ListByUser(ctx context.Context, userID string) ([]*brand.BrandProfile, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*brand.BrandProfile)
	return list, args.Error(1)
}

func (m *mockBrandRepository) GetBySID(ctx context.Context, userID, sid string) (*brand.BrandProfile, error) {
	args := m.Called(ctx, userID, sid)
	p, _ := args.Get(0).(*brand.BrandProfile)
	return p, args.Error(1)
}

func (m *mockBrandRepository) Delete(ctx context.Context, userID, sid string) error {
	return m.Called(ctx, userID, sid).Error(0)
}

// planLedger answers Get with a fixed plan; other methods are unused here.
type planLedger struct {
	ledger.Repository
	plan entitlement.Plan
}

func (l planLedger) Get(_ context.Context, userID string) (*ledger.Account, error) {
	return &ledger.Account{UserID: userID, Plan: l.plan}, nil
}

func (l planLedger) GetForUpdate(ctx context.Context, userID string) (*ledger.Account, error) {
	return l.Get(ctx, userID)
}

type txMarker struct{}

type inlineTx struct {
	calls int
}

func (t *inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

// lockRecorder notes the order of ledger locks and brand repository calls.
type lockRecorder struct {
	planLedger
	events *[]string
}

func (l lockRecorder) GetForUpdate(ctx context.Context, userID string) (*ledger.Account, error) {
	inTx, _ := ctx.Value(txMarker{}).(bool)
	if inTx {
		*l.events = append(*l.events, "lock")
	} else {
		*l.events = append(*l.events, "lock-outside-tx")
	}
	return l.planLedger.GetForUpdate(ctx, userID)
}

func TestCreateBrandProfile(t *testing.T) {
	req := dto.CreateBrandProfileRequest{Name: "  Night Owl  ", Niche: "gaming", Colors: []string{"#112233"}}

	t.Run("within limit", func(t *testing.T) {
		repo := new(mockBrandRepository)
		repo.On("CountByUser", mock.Anything, "u1").Return(int64(3), nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*brand.BrandProfile")).Return(nil)
		tx := &inlineTx{}

		uc := NewCreateBrandProfileUseCase(repo, planLedger{plan: entitlement.PlanPro}, tx, logger.NewNop())
		resp, err := uc.Execute(context.Background(), "u1", req)
		require.NoError(t, err)

		assert.Equal(t, "Night Owl", resp.Name)
		assert.True(t, id.HasPrefix(resp.SID, "bp"))
		assert.Equal(t, []string{"#112233"}, resp.Colors)
		assert.Equal(t, 1, tx.calls)
		repo.AssertExpectations(t)
	})

	t.Run("creator limit reached", func(t *testing.T) {
		repo := new(mockBrandRepository)
		repo.On("CountByUser", mock.Anything, "u1").Return(int64(1), nil)

		uc := NewCreateBrandProfileUseCase(repo, planLedger{plan: entitlement.PlanCreator}, &inlineTx{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), "u1", req)

		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeInsufficientPlan, appErr.Type)
		assert.Equal(t, 1, appErr.Meta["limit"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("free plan has no profiles", func(t *testing.T) {
		repo := new(mockBrandRepository)
		repo.On("CountByUser", mock.Anything, "u1").Return(int64(0), nil)

		uc := NewCreateBrandProfileUseCase(repo, planLedger{plan: entitlement.PlanFree}, &inlineTx{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), "u1", req)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInsufficientPlan))
	})

	t.Run("locks account inside the transaction before counting", func(t *testing.T) {
		var events []string
		repo := new(mockBrandRepository)
		repo.On("CountByUser", mock.Anything, "u1").
			Run(func(mock.Arguments) { events = append(events, "count") }).
			Return(int64(0), nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*brand.BrandProfile")).
			Run(func(mock.Arguments) { events = append(events, "create") }).
			Return(nil)

		accounts := lockRecorder{planLedger: planLedger{plan: entitlement.PlanCreator}, events: &events}
		uc := NewCreateBrandProfileUseCase(repo, accounts, &inlineTx{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), "u1", req)
		require.NoError(t, err)
		assert.Equal(t, []string{"lock", "count", "create"}, events)
	})

	t.Run("invalid color", func(t *testing.T) {
		repo := new(mockBrandRepository)
		uc := NewCreateBrandProfileUseCase(repo, planLedger{plan: entitlement.PlanPro}, &inlineTx{}, logger.NewNop())

		_, err := uc.Execute(context.Background(), "u1", dto.CreateBrandProfileRequest{Name: "x", Colors: []string{"red"}})
		assert.True(t, apperrors.IsValidationError(err))
		repo.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
	})
}

func TestListBrandProfiles(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := new(mockBrandRepository)
	repo.On("ListByUser", mock.Anything, "u1").Return([]*brand.BrandProfile{
		brand.ReconstructBrandProfile(1, "bp_1", "u1", "One", "", "", nil, now, now),
	}, nil)

	resp, err := NewListBrandProfilesUseCase(repo, planLedger{plan: entitlement.PlanCreator}).Execute(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "bp_1", resp.Items[0].SID)
	assert.Equal(t, []string{}, resp.Items[0].Colors)
	assert.Equal(t, 1, resp.Limit)
}

func TestDeleteBrandProfile(t *testing.T) {
	repo := new(mockBrandRepository)
	repo.On("Delete", mock.Anything, "u1", "bp_1").Return(nil)
	repo.On("Delete", mock.Anything, "u1", "bp_other").Return(brand.ErrNotFound)
	uc := NewDeleteBrandProfileUseCase(repo, logger.NewNop())

	require.NoError(t, uc.Execute(context.Background(), "u1", "bp_1"))
	assert.True(t, apperrors.IsNotFoundError(uc.Execute(context.Background(), "u1", "bp_other")))
}
