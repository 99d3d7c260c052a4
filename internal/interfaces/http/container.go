package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/application/billable"
	brandUsecases "github.com/creatorhub/creatorhub/internal/application/brand/usecases"
	contentUsecases "github.com/creatorhub/creatorhub/internal/application/content/usecases"
	entitlementUsecases "github.com/creatorhub/creatorhub/internal/application/entitlement/usecases"
	"github.com/creatorhub/creatorhub/internal/application/subscription"
	usageApp "github.com/creatorhub/creatorhub/internal/application/usage"
	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/content"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/infrastructure/auth"
	infraBilling "github.com/creatorhub/creatorhub/internal/infrastructure/billing"
	"github.com/creatorhub/creatorhub/internal/infrastructure/cache"
	"github.com/creatorhub/creatorhub/internal/infrastructure/completion"
	"github.com/creatorhub/creatorhub/internal/infrastructure/config"
	"github.com/creatorhub/creatorhub/internal/infrastructure/email"
	"github.com/creatorhub/creatorhub/internal/infrastructure/permission"
	"github.com/creatorhub/creatorhub/internal/infrastructure/ratelimit"
	"github.com/creatorhub/creatorhub/internal/infrastructure/repository"
	"github.com/creatorhub/creatorhub/internal/infrastructure/scheduler"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	"github.com/creatorhub/creatorhub/internal/shared/db"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/markdown"
)

type repositories struct {
	ledger      ledger.Repository
	usage       usage.Repository
	featureCost featurecost.Repository
	brand       brand.Repository
	content     content.Repository
	events      billing.EventLog
}

type allUseCases struct {
	costResolver  *entitlementUsecases.CostResolver
	evaluate      *entitlementUsecases.EvaluateFeatureUseCase
	entitlements  *entitlementUsecases.GetEntitlementsUseCase
	featureCosts  *entitlementUsecases.ManageFeatureCostsUseCase
	getSub        *subscription.GetSubscriptionUseCase
	synchronizer  *subscription.Synchronizer
	webhook       *subscription.WebhookUseCase
	usageRecorder *usageApp.Recorder
	usageQueries  *usageApp.QueryService
	createBrand   *brandUsecases.CreateBrandProfileUseCase
	listBrands    *brandUsecases.ListBrandProfilesUseCase
	deleteBrand   *brandUsecases.DeleteBrandProfileUseCase
	listContents  *contentUsecases.ListContentsUseCase
	deleteContent *contentUsecases.DeleteContentUseCase
	gateway       *billable.Gateway
	capabilities  *billable.Capabilities
}

type allHandlers struct {
	health       *handlers.HealthHandler
	subscription *handlers.SubscriptionHandler
	entitlement  *handlers.EntitlementHandler
	usage        *handlers.UsageHandler
	content      *handlers.ContentHandler
	brandProfile *handlers.BrandProfileHandler
	featureCost  *handlers.FeatureCostHandler
	feature      *handlers.FeatureHandler
	webhook      *handlers.WebhookHandler
}

// Container wires infrastructure, repositories, use cases and handlers. The
// API server uses all of it; the worker only needs RegisterJobs.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	policy *entitlement.PolicyTable
	repos  *repositories
	ucs    *allUseCases
	hdlrs  *allHandlers

	jwtSvc               *auth.JWTService
	enforcer             *permission.Enforcer
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer connects redis and builds every component. It fails on
// configuration that would only surface later at request time.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		policy: entitlement.DefaultPolicy(),
	}

	redisClient, err := initRedis(cfg, log)
	if err != nil {
		return nil, err
	}
	c.redis = redisClient
	c.repos = newRepositories(gdb, log)

	if err := c.initUseCases(); err != nil {
		return nil, err
	}
	if err := c.initMiddlewares(); err != nil {
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	return redisClient, nil
}

func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		ledger:      repository.NewLedgerRepository(gdb, log),
		usage:       repository.NewUsageLogRepository(gdb, log),
		featureCost: repository.NewFeatureCostRepository(gdb, log),
		brand:       repository.NewBrandProfileRepository(gdb, log),
		content:     repository.NewContentRepository(gdb, log),
		events:      repository.NewBillingEventRepository(gdb),
	}
}

func (c *Container) initUseCases() error {
	prices, err := subscription.NewPricePlans(c.cfg.Billing.PricePlans)
	if err != nil {
		return fmt.Errorf("invalid billing.price_plans: %w", err)
	}

	costCache := cache.NewRedisFeatureCostCache(c.redis, c.cfg.Cache.FeatureCostTTL, c.log)
	costResolver := entitlementUsecases.NewCostResolver(c.policy, c.repos.featureCost, costCache, c.log)
	evaluate := entitlementUsecases.NewEvaluateFeatureUseCase(c.policy, costResolver, c.log)

	provider := infraBilling.NewStripeProvider(c.cfg.Billing.StripeSecretKey, c.cfg.Billing.RequestTimeout, c.log)
	synchronizer := subscription.NewSynchronizer(c.repos.ledger, provider, prices, c.newNotifier(), c.log)

	recorder := usageApp.NewRecorder(c.repos.usage, c.log)
	generator := completion.NewClient(c.cfg.Completion, c.log)

	c.ucs = &allUseCases{
		costResolver:  costResolver,
		evaluate:      evaluate,
		entitlements:  entitlementUsecases.NewGetEntitlementsUseCase(c.repos.ledger, evaluate, c.log),
		featureCosts:  entitlementUsecases.NewManageFeatureCostsUseCase(c.policy, c.repos.featureCost, costResolver, c.log),
		getSub:        subscription.NewGetSubscriptionUseCase(c.repos.ledger),
		synchronizer:  synchronizer,
		webhook:       subscription.NewWebhookUseCase(synchronizer, c.repos.events, c.log),
		usageRecorder: recorder,
		usageQueries:  usageApp.NewQueryService(c.repos.usage, c.log),
		createBrand:   brandUsecases.NewCreateBrandProfileUseCase(c.repos.brand, c.repos.ledger, db.NewTransactionManager(c.db), c.log),
		listBrands:    brandUsecases.NewListBrandProfilesUseCase(c.repos.brand, c.repos.ledger),
		deleteBrand:   brandUsecases.NewDeleteBrandProfileUseCase(c.repos.brand, c.log),
		listContents:  contentUsecases.NewListContentsUseCase(c.repos.content, c.policy),
		deleteContent: contentUsecases.NewDeleteContentUseCase(c.repos.content, c.log),
		gateway: billable.NewGateway(c.repos.ledger, evaluate, c.repos.content, recorder, billable.Options{
			RefundPolicy:    c.cfg.Ledger.RefundPolicy,
			UpstreamTimeout: c.cfg.Completion.Timeout,
		}, c.log),
		capabilities: billable.NewCapabilities(generator, markdown.NewRenderer(), c.repos.usage),
	}
	return nil
}

func (c *Container) newNotifier() *email.PlanChangeNotifier {
	if !c.cfg.Email.Enabled {
		return email.NewPlanChangeNotifier(nil, c.log)
	}
	return email.NewPlanChangeNotifier(email.NewSMTPEmailService(c.cfg.Email), c.log)
}

func (c *Container) initMiddlewares() error {
	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.InitPermissions(); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.ledger, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log)
	c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisLimiter(c.redis), c.cfg.Server.RateLimitPerMinute, c.log)
	return nil
}

func (c *Container) initHandlers() {
	sqlPing := func(ctx context.Context) error {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	redisPing := func(ctx context.Context) error { return c.redis.Ping(ctx).Err() }

	c.hdlrs = &allHandlers{
		health:       handlers.NewHealthHandler(map[string]handlers.Pinger{"database": sqlPing, "redis": redisPing}),
		subscription: handlers.NewSubscriptionHandler(c.ucs.getSub, c.ucs.synchronizer, c.log),
		entitlement:  handlers.NewEntitlementHandler(c.ucs.entitlements, c.ucs.evaluate, c.log),
		usage:        handlers.NewUsageHandler(c.ucs.usageQueries, c.log),
		content:      handlers.NewContentHandler(c.ucs.listContents, c.ucs.deleteContent, c.log),
		brandProfile: handlers.NewBrandProfileHandler(c.ucs.createBrand, c.ucs.listBrands, c.ucs.deleteBrand, c.log),
		featureCost:  handlers.NewFeatureCostHandler(c.ucs.featureCosts, c.log),
		feature:      handlers.NewFeatureHandler(c.ucs.gateway, c.ucs.capabilities, c.repos.brand, c.log),
		webhook:      handlers.NewWebhookHandler(infraBilling.NewWebhookVerifier(c.cfg.Billing.StripeWebhookSecret), c.ucs.webhook, c.log),
	}
}

// RegisterJobs adds the monthly token reset and the periodic plan sync to s.
func (c *Container) RegisterJobs(s *scheduler.SchedulerManager) error {
	resetJob := subscription.NewResetTokensJob(c.repos.ledger, c.log)
	if err := s.RegisterTokenResetJob(resetJob, c.cfg.Scheduler.ResetInterval); err != nil {
		return fmt.Errorf("failed to register token reset job: %w", err)
	}
	syncJob := subscription.NewPlanSyncJob(c.repos.ledger, c.ucs.synchronizer, c.cfg.Scheduler.SyncBatchSize, c.log)
	if err := s.RegisterPlanSyncJob(syncJob, c.cfg.Scheduler.SyncInterval); err != nil {
		return fmt.Errorf("failed to register plan sync job: %w", err)
	}
	return nil
}

// Shutdown releases connections owned by the container. The database handle
// belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
