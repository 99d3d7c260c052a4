package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

type UsageHandler struct {
	queries usageQuerier
	logger  logger.Interface
}

func NewUsageHandler(queries usageQuerier, logger logger.Interface) *UsageHandler {
	return &UsageHandler{queries: queries, logger: logger}
}

// ListUsage handles GET /api/me/usage?feature=&from=&to=&page=&page_size=
func (h *UsageHandler) ListUsage(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	items, total, err := h.queries.List(c.Request.Context(), usage.Filter{
		UserID:  middleware.CurrentUserID(c),
		Feature: entitlement.FeatureID(c.Query("feature")),
		From:    from,
		To:      to,
		Offset:  p.Offset(),
		Limit:   p.PageSize,
	})
	if err != nil {
		h.logger.Errorw("failed to list usage", "error", err, "user_id", middleware.CurrentUserID(c))
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, items, total, p)
}

// GetSummary handles GET /api/me/usage/summary?from=&to=. The range defaults
// to the current billing cycle.
func (h *UsageHandler) GetSummary(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	resp, err := h.queries.Summary(c.Request.Context(), middleware.CurrentUserID(c), from, to)
	if err != nil {
		h.logger.Errorw("failed to summarize usage", "error", err, "user_id", middleware.CurrentUserID(c))
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(time.RFC3339, s); err != nil {
			return from, to, apperrors.NewValidationError("from must be an RFC 3339 timestamp", s)
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(time.RFC3339, s); err != nil {
			return from, to, apperrors.NewValidationError("to must be an RFC 3339 timestamp", s)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, apperrors.NewValidationError("to must not be before from")
	}
	return from.UTC(), to.UTC(), nil
}
