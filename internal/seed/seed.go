package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emirkay/schoolregistry/internal/app/models"
	appRepos "github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
	pkgauth "github.com/emirkay/schoolregistry/internal/pkg/auth"
)

// Default admin credentials, created once on an empty database. The password
// must be rotated after first login.
const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@school.local"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData seeds the role table and a default admin account.
// Re-running against a populated database is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (roles, admin account)...")
	var finalErr error

	// Roles persist for the institution's lifetime; insert only the missing
	// ones.
	for _, role := range appModels.AllRoles {
		tag, err := dbPool.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role)
		if err != nil {
			lgr.Error().Err(err).Str("role", string(role)).Msg("Error seeding role")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if tag.RowsAffected() > 0 {
			lgr.Info().Str("role", string(role)).Msg("Role seeded")
		}
	}
	if finalErr != nil {
		return finalErr
	}

	// Default admin.
	hash, err := pkgauth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	admin := &appModels.User{
		Name:     defaultAdminName,
		Email:    defaultAdminEmail,
		Password: hash,
	}
	err = userRepo.Create(ctx, admin)
	switch {
	case err == nil:
		lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	case errors.Is(err, apperrors.ErrDuplicate):
		existing, errGet := userRepo.GetByEmail(ctx, defaultAdminEmail)
		if errGet != nil {
			return fmt.Errorf("looking up existing admin: %w", errGet)
		}
		admin = existing
	default:
		return fmt.Errorf("creating default admin: %w", err)
	}

	if err := userRepo.AssignRole(ctx, admin.ID, appModels.RoleAdmin); err != nil {
		return fmt.Errorf("assigning admin role: %w", err)
	}

	return nil
}
