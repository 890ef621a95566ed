package middleware

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	principalCtxKey = contextKey("principal")
)

// WithPrincipal returns a copy of ctx carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// GetPrincipalFromCtx retrieves the authenticated principal from a request context.
func GetPrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(domain.Principal)
	return p, ok
}

// GetPrincipalFromContext retrieves the authenticated principal from the Gin context.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	if v, exists := c.Get(string(principalCtxKey)); exists {
		if p, ok := v.(domain.Principal); ok {
			return p, true
		}
	}
	return GetPrincipalFromCtx(c.Request.Context())
}
