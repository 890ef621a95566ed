package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes sets up the public authentication routes. The login route
// is wrapped by rateLimit when one is given.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, rateLimit gin.HandlerFunc) {
	h := &authHandler{authService: authService}

	chain := []gin.HandlerFunc{}
	if rateLimit != nil {
		chain = append(chain, rateLimit)
	}
	chain = append(chain, h.login)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", chain...)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Info("Login rejected", slog.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserResponse(&result.User),
	})
}
