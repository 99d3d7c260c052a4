// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for the caller-scoped /api/me routes.
type UserRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	EntitlementHandler  *handlers.EntitlementHandler
	UsageHandler        *handlers.UsageHandler
	ContentHandler      *handlers.ContentHandler
	BrandProfileHandler *handlers.BrandProfileHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupUserRoutes configures routes that only ever act on the caller's own data.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	me := engine.Group("/api/me")
	me.Use(cfg.AuthMiddleware.RequireAuth())
	{
		me.GET("/subscription", cfg.SubscriptionHandler.GetSubscription)
		me.POST("/subscription/sync", cfg.SubscriptionHandler.SyncSubscription)

		me.GET("/entitlements", cfg.EntitlementHandler.GetEntitlements)

		me.GET("/usage", cfg.UsageHandler.ListUsage)
		me.GET("/usage/summary", cfg.UsageHandler.GetSummary)

		// :sid is generated content SID (gc_xxx format)
		me.GET("/contents", cfg.ContentHandler.ListContents)
		me.DELETE("/contents/:sid", cfg.ContentHandler.DeleteContent)

		// :sid is brand profile SID (bp_xxx format)
		me.GET("/brand-profiles", cfg.BrandProfileHandler.ListBrandProfiles)
		me.POST("/brand-profiles", cfg.BrandProfileHandler.CreateBrandProfile)
		me.DELETE("/brand-profiles/:sid", cfg.BrandProfileHandler.DeleteBrandProfile)
	}
}
