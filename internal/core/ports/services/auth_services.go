package services

import (
	"context"
	"time"

	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// LoginResult carries an issued access token and the account it was issued to.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// AuthSvc issues access tokens.
type AuthSvc interface {
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// GenerateAccessToken signs a token for the given user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
