package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	entdto "github.com/creatorhub/creatorhub/internal/application/entitlement/dto"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// FeatureCostHandler lets admins tune token costs at runtime.
type FeatureCostHandler struct {
	manager featureCostManager
	logger  logger.Interface
}

func NewFeatureCostHandler(manager featureCostManager, logger logger.Interface) *FeatureCostHandler {
	return &FeatureCostHandler{manager: manager, logger: logger}
}

// ListFeatureCosts handles GET /api/admin/feature-costs
func (h *FeatureCostHandler) ListFeatureCosts(c *gin.Context) {
	costs, err := h.manager.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list feature costs", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", costs)
}

// UpdateFeatureCost handles PUT /api/admin/feature-costs/:feature
func (h *FeatureCostHandler) UpdateFeatureCost(c *gin.Context) {
	var req entdto.UpdateFeatureCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	feature := entitlement.FeatureID(c.Param("feature"))
	if err := h.manager.Update(c.Request.Context(), feature, *req.TokenCost, middleware.CurrentUserID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "feature cost updated", gin.H{"feature": feature, "token_cost": *req.TokenCost})
}

// ResetFeatureCost handles DELETE /api/admin/feature-costs/:feature, restoring
// the catalog default.
func (h *FeatureCostHandler) ResetFeatureCost(c *gin.Context) {
	feature := entitlement.FeatureID(c.Param("feature"))
	if err := h.manager.Reset(c.Request.Context(), feature, middleware.CurrentUserID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
