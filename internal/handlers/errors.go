package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error to a status code. 500-class causes are logged
// and replaced by a generic message.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var scopeErr *apperrors.ScopeNotFoundError

	switch {
	case errors.Is(err, apperrors.ErrInvalidScope):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid region or category"})
	case errors.As(err, &scopeErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: scopeErr.Error()})
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: clientMessage(c, err, apperrors.ErrInvalidAmount)})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: clientMessage(c, err, apperrors.ErrValidation)})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: clientMessage(c, err, apperrors.ErrDuplicate)})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// clientMessage returns err's text, or only the sentinel's text when err came
// from the store, whose messages carry ids and constraint names.
func clientMessage(c *gin.Context, err, sentinel error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Store rejected request", slog.String("error", err.Error()))
		return sentinel.Error()
	}
	return err.Error()
}

// respondBindError reports a malformed body or query string.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// currentPrincipal fetches the authenticated principal; the auth middleware sets
// it on every /api/v1 route, so a miss is answered with 401.
func currentPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return p, ok
}

// int64Param parses a positive integer path parameter.
func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return v, true
}

// regionCodeParam parses the region code path parameter.
func regionCodeParam(c *gin.Context) (int, bool) {
	v, err := strconv.Atoi(c.Param("regionCode"))
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid region code"})
		return 0, false
	}
	return v, true
}
