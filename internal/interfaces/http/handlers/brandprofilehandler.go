package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	branddto "github.com/creatorhub/creatorhub/internal/application/brand/dto"
	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

type BrandProfileHandler struct {
	createUseCase brandProfileCreator
	listUseCase   brandProfileLister
	deleteUseCase brandProfileDeleter
	logger        logger.Interface
}

func NewBrandProfileHandler(createUC brandProfileCreator, listUC brandProfileLister, deleteUC brandProfileDeleter, logger logger.Interface) *BrandProfileHandler {
	return &BrandProfileHandler{
		createUseCase: createUC,
		listUseCase:   listUC,
		deleteUseCase: deleteUC,
		logger:        logger,
	}
}

// ListBrandProfiles handles GET /api/me/brand-profiles
func (h *BrandProfileHandler) ListBrandProfiles(c *gin.Context) {
	resp, err := h.listUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.logger.Errorw("failed to list brand profiles", "error", err, "user_id", middleware.CurrentUserID(c))
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// CreateBrandProfile handles POST /api/me/brand-profiles
func (h *BrandProfileHandler) CreateBrandProfile(c *gin.Context) {
	var req branddto.CreateBrandProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create brand profile", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	resp, err := h.createUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, resp, "brand profile created")
}

// DeleteBrandProfile handles DELETE /api/me/brand-profiles/:sid
func (h *BrandProfileHandler) DeleteBrandProfile(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c), c.Param("sid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
