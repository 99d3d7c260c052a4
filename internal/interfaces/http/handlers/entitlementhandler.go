package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

type EntitlementHandler struct {
	getUseCase entitlementsGetter
	matrix     policyEvaluator
	logger     logger.Interface
}

func NewEntitlementHandler(getUC entitlementsGetter, matrix policyEvaluator, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{getUseCase: getUC, matrix: matrix, logger: logger}
}

// GetEntitlements handles GET /api/me/entitlements
func (h *EntitlementHandler) GetEntitlements(c *gin.Context) {
	resp, err := h.getUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.logger.Errorw("failed to get entitlements", "error", err, "user_id", middleware.CurrentUserID(c))
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// GetPolicyMatrix handles GET /api/admin/policy. It returns every plan's
// entitlements with the effective token costs.
func (h *EntitlementHandler) GetPolicyMatrix(c *gin.Context) {
	matrix := make(map[entitlement.Plan][]entitlement.Entitlement, len(entitlement.Plans))
	for _, plan := range entitlement.Plans {
		ents, err := h.matrix.ExecuteAll(c.Request.Context(), plan)
		if err != nil {
			h.logger.Errorw("failed to evaluate policy matrix", "error", err, "plan", plan)
			utils.ErrorResponseWithError(c, err)
			return
		}
		matrix[plan] = ents
	}
	utils.SuccessResponse(c, http.StatusOK, "", matrix)
}
