package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/infrastructure/permission"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	FeatureCostHandler   *handlers.FeatureCostHandler
	EntitlementHandler   *handlers.EntitlementHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures routes guarded by casbin policies.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	{
		costs := admin.Group("/feature-costs")
		{
			costs.GET("", cfg.PermissionMiddleware.RequirePermission(permission.ResourceFeatureCosts, permission.ActionRead), cfg.FeatureCostHandler.ListFeatureCosts)
			costs.PUT("/:feature", cfg.PermissionMiddleware.RequirePermission(permission.ResourceFeatureCosts, permission.ActionUpdate), cfg.FeatureCostHandler.UpdateFeatureCost)
			costs.DELETE("/:feature", cfg.PermissionMiddleware.RequirePermission(permission.ResourceFeatureCosts, permission.ActionUpdate), cfg.FeatureCostHandler.ResetFeatureCost)
		}

		admin.GET("/policy", cfg.PermissionMiddleware.RequirePermission(permission.ResourcePolicy, permission.ActionRead), cfg.EntitlementHandler.GetPolicyMatrix)
	}
}
