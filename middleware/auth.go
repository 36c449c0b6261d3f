package middleware

import (
	"context"
	"errors"
	"strings"

	"musicweb-api/helper"
	"musicweb-api/logging"
	"musicweb-api/metrics"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = helper.NewHTTPHelper()

const IdentityKey = "identity"

// Authenticator turns a bearer token into the current identity of a stored account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware resolves the bearer token into an identity. Every credential failure answers the same 401.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			metrics.RecordAuthDecision("authenticate", "unauthenticated")
			HTTPHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				metrics.RecordAuthDecision("authenticate", "error")
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("authentication failed")
				HTTPHelper.SendInternalError(c)
				c.Abort()
				return
			}
			metrics.RecordAuthDecision("authenticate", "unauthenticated")
			HTTPHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Set("user_id", identity.ID)
		c.Set("username", identity.Username)
		c.Set("role", string(identity.Role))

		metrics.RecordAuthDecision("authenticate", "allowed")
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (*models.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok && identity != nil
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			metrics.RecordAuthDecision("role", "unauthenticated")
			HTTPHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				metrics.RecordAuthDecision("role", "allowed")
				c.Next()
				return
			}
		}

		metrics.RecordAuthDecision("role", "forbidden")
		HTTPHelper.SendForbiddenError(c, "")
		c.Abort()
	}
}
