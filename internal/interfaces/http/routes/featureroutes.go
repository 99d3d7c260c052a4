package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
)

// FeatureRouteConfig holds dependencies for the token-gated feature routes.
type FeatureRouteConfig struct {
	FeatureHandler *handlers.FeatureHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupFeatureRoutes configures the billable endpoints. Authentication runs
// before rate limiting so limits are keyed per user.
func SetupFeatureRoutes(engine *gin.Engine, cfg *FeatureRouteConfig) {
	features := engine.Group("/api/features")
	features.Use(cfg.AuthMiddleware.RequireAuth())
	features.Use(cfg.RateLimiter.Limit())
	{
		features.POST("/thumbnails", cfg.FeatureHandler.GenerateThumbnail)
		features.POST("/video-ideas", cfg.FeatureHandler.GenerateVideoIdeas)
		features.POST("/branding-kit", cfg.FeatureHandler.GenerateBrandingKit)
		features.POST("/niche-analysis", cfg.FeatureHandler.AnalyzeNiche)
		features.POST("/chat", cfg.FeatureHandler.Chat)
		features.GET("/channel-analytics", cfg.FeatureHandler.ChannelAnalytics)
	}
}
