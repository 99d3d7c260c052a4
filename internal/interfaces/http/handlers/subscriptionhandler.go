package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/creatorhub/creatorhub/internal/application/subscription/dto"
	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// SubscriptionHandler serves the caller's plan and token balance.
type SubscriptionHandler struct {
	getUseCase subscriptionGetter
	sync       planSynchronizer
	logger     logger.Interface
}

func NewSubscriptionHandler(getUC subscriptionGetter, sync planSynchronizer, logger logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{getUseCase: getUC, sync: sync, logger: logger}
}

// GetSubscription handles GET /api/me/subscription
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	resp, err := h.getUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.logger.Errorw("failed to get subscription", "error", err, "user_id", middleware.CurrentUserID(c))
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// SyncSubscription handles POST /api/me/subscription/sync. When the billing
// provider is down the last known subscription is returned with the 503.
// @Summary Sync subscription
// @Tags Subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionResponse}
// @Failure 503 {object} utils.APIResponse{data=subdto.SubscriptionResponse}
// @Router /api/me/subscription/sync [post]
func (h *SubscriptionHandler) SyncSubscription(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	account, err := h.sync.Sync(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, billing.ErrProviderUnavailable) && account != nil {
			utils.ErrorResponseWithData(c,
				apperrors.NewBillingUnavailableError("billing provider unavailable, showing last known plan"),
				subdto.ToSubscriptionResponse(account, biztime.NextCycleStartUTC(biztime.NowUTC())),
			)
			return
		}
		h.logger.Errorw("failed to sync subscription", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription synchronized",
		subdto.ToSubscriptionResponse(account, biztime.NextCycleStartUTC(biztime.NowUTC())))
}
