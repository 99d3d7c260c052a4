package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
	"github.com/creatorhub/creatorhub/internal/shared/id"
)

const maxRequestIDLength = 128

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(constants.HeaderRequestID)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = id.NewRequestID()
		}
		c.Set(constants.ContextKeyRequestID, rid)
		c.Header(constants.HeaderRequestID, rid)
		c.Next()
	}
}
