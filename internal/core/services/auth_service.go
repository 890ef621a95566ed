package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/platform/config"
	"github.com/SscSPs/records_management_app/internal/utils"
)

// authService issues bearer tokens for username/password logins.
type authService struct {
	BaseService
	cfg   *config.Config
	users portssvc.UserAuthSvc
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, users portssvc.UserAuthSvc) portssvc.AuthSvc {
	return &authService{cfg: cfg, users: users}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	user, err := s.users.AuthenticateUser(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.Int64("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &portssvc.LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *authService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.Username, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
