package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/SscSPs/records_management_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates the account service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) requireAdmin(ctx context.Context, principal domain.Principal, operation string) error {
	if !policy.CanManageUsers(principal) {
		s.LogWarn(ctx, "Non-admin attempted user management", append(principalAttrs(principal), slog.String("operation", operation))...)
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, principal, "list_users"); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", principalAttrs(principal)...)
		return nil, err
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, principal domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	if err := s.requireAdmin(ctx, principal, "create_user"); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidationFailedError("username is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationFailedError("password is required")
	}

	role := domain.RoleEmployee
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		role = parsed
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		s.LogError(ctx, err, "Failed to hash password", principalAttrs(principal)...)
		return nil, err
	}

	now := s.now()
	created, err := s.userRepo.SaveUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create user", append(principalAttrs(principal), slog.String("username", username))...)
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", append(principalAttrs(principal),
		slog.Int64("user_id", created.UserID), slog.String("new_role", string(role)))...)
	return created, nil
}

func (s *userService) ResetPassword(ctx context.Context, principal domain.Principal, userID int64, newPassword string) error {
	if err := s.requireAdmin(ctx, principal, "reset_password"); err != nil {
		return err
	}
	if newPassword == "" {
		return apperrors.NewValidationFailedError("newPassword is required")
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return apperrors.NewValidationFailedError(err.Error())
		}
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reset password", append(principalAttrs(principal), slog.Int64("user_id", userID))...)
		}
		return err
	}
	s.LogInfo(ctx, "Password reset", append(principalAttrs(principal), slog.Int64("user_id", userID))...)
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, principal domain.Principal, userID int64) error {
	if err := s.requireAdmin(ctx, principal, "delete_user"); err != nil {
		return err
	}
	if userID == principal.ID {
		return apperrors.NewValidationFailedError("admins cannot delete their own account here")
	}
	return s.markDeleted(ctx, principal, userID)
}

func (s *userService) DeleteSelf(ctx context.Context, principal domain.Principal) error {
	if principal.ID <= 0 {
		return apperrors.ErrUnauthorized
	}
	return s.markDeleted(ctx, principal, principal.ID)
}

func (s *userService) markDeleted(ctx context.Context, principal domain.Principal, userID int64) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", append(principalAttrs(principal), slog.Int64("user_id", userID))...)
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", append(principalAttrs(principal), slog.Int64("user_id", userID))...)
	return nil
}

// AuthenticateUser reports every failure as ErrUnauthorized; which half was wrong
// is only logged.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.BurnPasswordCheck(password)
			s.LogDebug(ctx, "Login for unknown username", slog.String("username", username))
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login", slog.String("username", username))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Login with wrong password", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Role.Valid() {
		s.LogWarn(ctx, "Stored role is not recognised, refusing login",
			slog.Int64("user_id", user.UserID), slog.String("stored_role", string(user.Role)))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) ResolvePrincipal(ctx context.Context, userID int64, claimedRole domain.Role) (*domain.Principal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Token subject has no active account", slog.Int64("user_id", userID))
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	role, mismatch := policy.ReconcileRole(claimedRole, user.Role, true)
	if mismatch {
		s.LogWarn(ctx, "Token role differs from stored role",
			slog.Int64("user_id", userID),
			slog.String("claimed_role", string(claimedRole)),
			slog.String("stored_role", string(user.Role)))
	}
	if !role.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	principal := user.Principal()
	principal.Role = role
	return &principal, nil
}
