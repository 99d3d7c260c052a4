package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/interfaces/http/middleware"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// ContentHandler serves the generated content library.
type ContentHandler struct {
	listUseCase   contentLister
	deleteUseCase contentDeleter
	logger        logger.Interface
}

func NewContentHandler(listUC contentLister, deleteUC contentDeleter, logger logger.Interface) *ContentHandler {
	return &ContentHandler{listUseCase: listUC, deleteUseCase: deleteUC, logger: logger}
}

// ListContents handles GET /api/me/contents?feature=&page=&page_size=
func (h *ContentHandler) ListContents(c *gin.Context) {
	p := utils.ParsePagination(c)
	items, total, err := h.listUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c), c.Query("feature"), p.Offset(), p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, items, total, p)
}

// DeleteContent handles DELETE /api/me/contents/:sid
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), middleware.CurrentUserID(c), c.Param("sid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
