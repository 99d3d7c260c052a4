package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/interfaces/http/handlers"
)

// WebhookRouteConfig holds dependencies for billing provider callbacks.
type WebhookRouteConfig struct {
	WebhookHandler *handlers.WebhookHandler
}

// SetupWebhookRoutes configures unauthenticated webhook routes; requests are
// authenticated by their signature instead.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", cfg.WebhookHandler.HandleStripe)
	}
}
