package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// CapabilityChecker decides whether a role may perform action on object.
type CapabilityChecker interface {
	Authorize(role domain.Role, object, action string) (bool, error)
}

// RequireCapability gates a route group on the principal's role. It must run after
// AuthMiddleware. Record-level ownership is checked later by the services.
func RequireCapability(checker CapabilityChecker, object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		principal, ok := GetPrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		allowed, err := checker.Authorize(principal.Role, object, action)
		if err != nil {
			logger.Error("Capability check failed", slog.String("object", object), slog.String("action", action), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !allowed {
			logger.Warn("Capability denied", slog.String("object", object), slog.String("action", action))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
