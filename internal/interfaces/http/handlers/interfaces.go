package handlers

import (
	"context"
	"time"

	branddto "github.com/creatorhub/creatorhub/internal/application/brand/dto"
	contentdto "github.com/creatorhub/creatorhub/internal/application/content/dto"
	entdto "github.com/creatorhub/creatorhub/internal/application/entitlement/dto"
	"github.com/creatorhub/creatorhub/internal/application/billable"
	subdto "github.com/creatorhub/creatorhub/internal/application/subscription/dto"
	usagedto "github.com/creatorhub/creatorhub/internal/application/usage/dto"
	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
)

type subscriptionGetter interface {
	Execute(ctx context.Context, userID string) (*subdto.SubscriptionResponse, error)
}

type planSynchronizer interface {
	Sync(ctx context.Context, userID string) (*ledger.Account, error)
}

type entitlementsGetter interface {
	Execute(ctx context.Context, userID string) (*entdto.EntitlementsResponse, error)
}

type usageQuerier interface {
	List(ctx context.Context, filter usage.Filter) ([]usagedto.UsageEntryResponse, int64, error)
	Summary(ctx context.Context, userID string, from, to time.Time) (*usagedto.UsageSummaryResponse, error)
}

type contentLister interface {
	Execute(ctx context.Context, userID, feature string, offset, limit int) ([]*contentdto.ContentResponse, int64, error)
}

type contentDeleter interface {
	Execute(ctx context.Context, userID, sid string) error
}

type brandProfileCreator interface {
	Execute(ctx context.Context, userID string, req branddto.CreateBrandProfileRequest) (*branddto.BrandProfileResponse, error)
}

type brandProfileLister interface {
	Execute(ctx context.Context, userID string) (*branddto.BrandProfileListResponse, error)
}

type brandProfileDeleter interface {
	Execute(ctx context.Context, userID, sid string) error
}

type featureCostManager interface {
	List(ctx context.Context) ([]entdto.FeatureCostResponse, error)
	Update(ctx context.Context, feature entitlement.FeatureID, cost int, adminID string) error
	Reset(ctx context.Context, feature entitlement.FeatureID, adminID string) error
}

type webhookParser interface {
	Parse(payload []byte, signature string) (billing.Event, error)
}

type webhookProcessor interface {
	Handle(ctx context.Context, ev billing.Event) error
}

type billableExecutor interface {
	Execute(ctx context.Context, cmd billable.Command, capability billable.Capability) (*billable.Outcome, error)
}

type brandProfileFinder interface {
	GetBySID(ctx context.Context, userID, sid string) (*brand.BrandProfile, error)
}

type policyEvaluator interface {
	ExecuteAll(ctx context.Context, plan entitlement.Plan) ([]entitlement.Entitlement, error)
}
