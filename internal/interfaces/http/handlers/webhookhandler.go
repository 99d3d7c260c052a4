package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	infrabilling "github.com/creatorhub/creatorhub/internal/infrastructure/billing"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// Stripe rejects payloads above 64KiB anyway.
const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	parser    webhookParser
	processor webhookProcessor
	logger    logger.Interface
}

func NewWebhookHandler(parser webhookParser, processor webhookProcessor, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{parser: parser, processor: processor, logger: logger}
}

// HandleStripe handles POST /webhooks/stripe. A non-2xx answer makes Stripe
// redeliver, so only processing failures return 5xx.
// @Summary Receive a Stripe event
// @Tags Webhooks
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("failed to read body"))
		return
	}

	ev, err := h.parser.Parse(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, infrabilling.ErrInvalidSignature) {
			h.logger.Warnw("rejected billing webhook with invalid signature", "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("invalid signature"))
			return
		}
		utils.ErrorResponseWithError(c, apperrors.NewBadRequestError("malformed event", err.Error()))
		return
	}

	if err := h.processor.Handle(c.Request.Context(), ev); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewBillingUnavailableError("event processing failed"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"received": true})
}
