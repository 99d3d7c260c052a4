package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/creatorhub/creatorhub/docs"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/routes"
)

// Router owns the gin engine and the container that feeds it.
type Router struct {
	*Container
}

// NewRouter registers every route on the container engine.
func NewRouter(c *Container) *Router {
	r := &Router{Container: c}
	r.SetupRoutes()
	return r
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.hdlrs.health.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	if r.cfg.Server.IsDebug() {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		SubscriptionHandler: r.hdlrs.subscription,
		EntitlementHandler:  r.hdlrs.entitlement,
		UsageHandler:        r.hdlrs.usage,
		ContentHandler:      r.hdlrs.content,
		BrandProfileHandler: r.hdlrs.brandProfile,
		AuthMiddleware:      r.authMiddleware,
	})
	routes.SetupFeatureRoutes(r.engine, &routes.FeatureRouteConfig{
		FeatureHandler: r.hdlrs.feature,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		FeatureCostHandler:   r.hdlrs.featureCost,
		EntitlementHandler:   r.hdlrs.entitlement,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupWebhookRoutes(r.engine, &routes.WebhookRouteConfig{
		WebhookHandler: r.hdlrs.webhook,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
