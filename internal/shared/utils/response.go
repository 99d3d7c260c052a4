package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/shared/errors"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

type ListResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

func CreatedResponse(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data, Message: message})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
	})
}

// ErrorResponseWithError renders err. Errors that are not AppErrors become a
// generic 500 without leaking internals.
func ErrorResponseWithError(c *gin.Context, err error) {
	ErrorResponseWithData(c, err, nil)
}

// ErrorResponseWithData renders err and still attaches data, e.g. the
// last-known-good subscription when the billing provider is down.
func ErrorResponseWithData(c *gin.Context, err error, data any) {
	status, info := errorInfo(err)
	c.JSON(status, APIResponse{Success: false, Error: info, Data: data})
}

func errorInfo(err error) (int, *ErrorInfo) {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Code, &ErrorInfo{
			Type:      string(appErr.Type),
			Message:   appErr.Message,
			Details:   appErr.Details,
			Meta:      appErr.Meta,
			Retryable: appErr.Retryable,
		}
	}
	return http.StatusInternalServerError, &ErrorInfo{
		Type:    string(errors.ErrorTypeInternal),
		Message: "Internal server error occurred",
	}
}

func ListSuccessResponse(c *gin.Context, items any, total int64, p Pagination) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: ListResponse{
			Items:      items,
			Total:      total,
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalPages: TotalPages(total, p.PageSize),
		},
	})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
