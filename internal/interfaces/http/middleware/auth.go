package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/auth"
	"github.com/creatorhub/creatorhub/internal/shared/constants"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
	"github.com/creatorhub/creatorhub/internal/shared/utils"
)

// TokenVerifier is satisfied by auth.JWTService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AccountEnsurer creates the default ledger row on first contact.
type AccountEnsurer interface {
	Ensure(ctx context.Context, userID, email string) (*ledger.Account, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	accounts AccountEnsurer
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, accounts AccountEnsurer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		accounts: accounts,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and makes sure the caller has a
// ledger account. Nothing downstream runs for an unauthenticated request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		if _, err := m.accounts.Ensure(c.Request.Context(), claims.UserID(), claims.Email); err != nil {
			m.logger.Errorw("failed to ensure ledger account", "error", err, "user_id", claims.UserID())
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role = constants.RoleUser
		}
		c.Set(constants.ContextKeyUserID, claims.UserID())
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserRole, role)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUserID returns the id set by RequireAuth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
