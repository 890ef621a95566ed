// Command records_seed loads regions and categories and bootstraps the first admin.
// Run it after the backend has applied migrations; it is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/records_management_app/internal/platform/config"
	"github.com/SscSPs/records_management_app/internal/platform/seed"
	"github.com/SscSPs/records_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/records_management_app/internal/utils"
	"github.com/SscSPs/records_management_app/pkg/database"
)

func main() {
	file := flag.String("file", "seed/reference_data.yaml", "reference data YAML")
	adminUser := flag.String("admin-user", envOr("SEED_ADMIN_USERNAME", "admin"), "username of the bootstrap admin")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password of the bootstrap admin; empty skips the bootstrap")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	data, err := seed.LoadFile(*file)
	if err != nil {
		logger.Error("Failed to read reference data", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool, nil)

	if err := repos.ReferenceRepo.UpsertReferenceData(ctx, data.DomainRegions(), data.DomainCategories()); err != nil {
		logger.Error("Failed to load reference data", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Reference data loaded", slog.Int("regions", len(data.Regions)), slog.Int("categories", len(data.Categories)))

	if *adminPassword == "" {
		logger.Info("No admin password given; skipping admin bootstrap")
		return
	}
	if err := bootstrapAdmin(ctx, repos.UserRepo, strings.TrimSpace(*adminUser), *adminPassword); err != nil {
		logger.Error("Failed to bootstrap admin", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// bootstrapAdmin creates the admin account unless the username is already active.
func bootstrapAdmin(ctx context.Context, users portsrepo.UserRepositoryFacade, username, password string) error {
	existing, err := users.FindUserByUsername(ctx, username)
	if err == nil {
		slog.Info("Admin already exists", slog.Int64("user_id", existing.UserID), slog.String("role", string(existing.Role)))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	created, err := users.SaveUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	slog.Info("Admin created", slog.Int64("user_id", created.UserID), slog.String("username", created.Username))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
