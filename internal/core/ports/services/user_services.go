package services

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves an active user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers retrieves every active user. Admin only.
	ListUsers(ctx context.Context, principal domain.Principal) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser adds an account. Admin only.
	CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error)

	// ResetPassword replaces another account's password. Admin only.
	ResetPassword(ctx context.Context, principal domain.Principal, userID int64, newPassword string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser soft-deletes another account. Admin only; admins cannot remove themselves here.
	DeleteUser(ctx context.Context, principal domain.Principal, userID int64) error

	// DeleteSelf soft-deletes the principal's own account.
	DeleteSelf(ctx context.Context, principal domain.Principal) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// ResolvePrincipal rebuilds the principal from the stored account, reconciling the claimed role.
	ResolvePrincipal(ctx context.Context, userID int64, claimedRole domain.Role) (*domain.Principal, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
