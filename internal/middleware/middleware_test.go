package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/authz"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/SscSPs/records_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "records-test"
)

type stubResolver struct {
	users map[int64]domain.User
	err   error
}

func (s stubResolver) ResolvePrincipal(_ context.Context, userID int64, _ domain.Role) (*domain.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	p := u.Principal()
	return &p, nil
}

func newEngine(resolver middleware.PrincipalResolver, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(testSecret, testIssuer, resolver)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, ok := middleware.GetPrincipalFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/me", handlers...)
	return r
}

func bearer(t *testing.T, userID int64, role string, expiry time.Duration) string {
	t.Helper()
	token, _, err := utils.GenerateJWT(userID, "u", role, testSecret, expiry, testIssuer)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	resolver := stubResolver{users: map[int64]domain.User{
		5: {UserID: 5, Username: "e", Role: domain.RoleEmployee},
	}}
	engine := newEngine(resolver)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", bearer(t, 5, "employee", -time.Minute), http.StatusUnauthorized},
		{"deleted account", bearer(t, 9, "employee", time.Hour), http.StatusUnauthorized},
		{"valid", bearer(t, 5, "employee", time.Hour), http.StatusOK},
		{"stale admin claim still resolves", bearer(t, 5, "admin", time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				var body struct {
					ID   int64  `json:"id"`
					Role string `json:"role"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, int64(5), body.ID)
				assert.Equal(t, "employee", body.Role)
			}
		})
	}
}

func TestAuthMiddleware_ResolverFailure(t *testing.T) {
	engine := newEngine(stubResolver{err: errors.New("db down")})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, 5, "employee", time.Hour))
	w := httptest.NewRecorder()

	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRequireCapability(t *testing.T) {
	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)
	resolver := stubResolver{users: map[int64]domain.User{
		1: {UserID: 1, Role: domain.RoleAdmin},
		5: {UserID: 5, Role: domain.RoleEmployee},
	}}
	engine := newEngine(resolver, middleware.RequireCapability(authorizer, authz.ObjectUsers, authz.ActionManage))

	for id, want := range map[int64]int{1: http.StatusOK, 5: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", bearer(t, id, "admin", time.Hour))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "user %d", id)
	}
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ping", func(c *gin.Context) {
		assert.NotNil(t, middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
	assert.NoError(t, err)

	upstream := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, upstream)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, upstream, w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit_MemoryStore(t *testing.T) {
	lim, err := middleware.NewLimiter("2-M", "test", nil)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewLimiter("lots", "test", nil)
	assert.Error(t, err)
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
