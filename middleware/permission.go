package middleware

import (
	"musicweb-api/logging"
	"musicweb-api/metrics"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

// CheckPermission admits identities holding required. It must run after AuthMiddleware.
func CheckPermission(perms services.PermissionService, required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			metrics.RecordAuthDecision("permission", "unauthenticated")
			HTTPHelper.SendUnauthorizedError(c)
			c.Abort()
			return
		}

		if identity.Role == models.RoleAdmin {
			metrics.RecordAuthDecision("permission", "allowed")
			c.Next()
			return
		}

		allowed, err := perms.HasPermission(c.Request.Context(), identity, required)
		if err != nil {
			metrics.RecordAuthDecision("permission", "error")
			logging.Ctx(c.Request.Context()).Error().Err(err).
				Str("user_id", identity.ID).
				Str("permission", required).
				Msg("permission check failed")
			HTTPHelper.SendInternalError(c)
			c.Abort()
			return
		}
		if !allowed {
			metrics.RecordAuthDecision("permission", "forbidden")
			HTTPHelper.SendForbiddenError(c, "")
			c.Abort()
			return
		}

		metrics.RecordAuthDecision("permission", "allowed")
		c.Next()
	}
}
