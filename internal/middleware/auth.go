package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalResolver rebuilds a principal from the account store. It returns
// apperrors.ErrUnauthorized when the account is gone or unusable.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID int64, claimedRole domain.Role) (*domain.Principal, error)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens and
// resolves the principal against the stored account on every request.
func AuthMiddleware(jwtSecret, issuer string, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(parts[1]), jwtSecret, issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			logger.Error("User ID (subject) missing from valid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// An unparsable claim is passed through verbatim so the mismatch gets logged.
		claimedRole, err := domain.ParseRole(claims.Role)
		if err != nil {
			claimedRole = domain.Role(claims.Role)
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), userID, claimedRole)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			logger.Error("Failed to resolve principal", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		enrichedLogger := logger.With(
			slog.Int64("principal_id", principal.ID),
			slog.String("role", string(principal.Role)),
		)
		ctx := WithLogger(WithPrincipal(c.Request.Context(), *principal), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(principalCtxKey), *principal)

		c.Next()
	}
}
