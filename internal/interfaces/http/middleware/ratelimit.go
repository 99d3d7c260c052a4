package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/infrastructure/ratelimit"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// RateLimiter throttles billable endpoints per authenticated user. It fails
// open when redis is unreachable.
type RateLimiter struct {
	limiter ratelimit.Limiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, perMinute int, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limits:  ratelimit.Limits{PerMinute: perMinute},
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limits.PerMinute <= 0 {
			c.Next()
			return
		}
		key := "user:" + CurrentUserID(c)
		if key == "user:" {
			key = "ip:" + c.ClientIP()
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "key", key)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "60")
			utils.ErrorResponseWithError(c, apperrors.NewRateLimitedError("rate limit exceeded, please try again later").
				WithMeta("retry_after_seconds", int(time.Minute.Seconds())))
			c.Abort()
			return
		}

		c.Next()
	}
}
