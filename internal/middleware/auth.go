package middleware

import (
	"context"
	"net/http"

	"cryptoboard/internal/domain"
	"cryptoboard/internal/pkg/response"
	"cryptoboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

// AccessCookieName must match the cookie the auth handler issues.
const AccessCookieName = "token"

// UserLookup resolves an authenticated user ID to the full user row.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AccessTokenValidator verifies a signed access token and returns its claims.
type AccessTokenValidator interface {
	ValidateAccessToken(raw string) (*token.Claims, error)
}

// RequireAuth guards protected routes. It reads the access-token cookie,
// verifies the signature and expiry, and confirms the subject still exists.
// It never attempts a refresh; an expired access token is a plain 401 and
// recovery is the client's job.
func RequireAuth(validator AccessTokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AccessCookieName)
		if err != nil || raw == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
			c.Abort()
			return
		}

		claims, err := validator.ValidateAccessToken(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// Token is cryptographically fine but the account is gone.
			response.Error(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)

		c.Next()
	}
}
