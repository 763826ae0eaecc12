package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// AccountService handles account maintenance, role assignment and profile
// completion. Deleting an account cascades through its profiles and their
// records; a taught subject blocks the delete.
type AccountService struct {
	userRepo       *repositories.UserRepository
	studentRepo    *repositories.StudentRepository
	parentRepo     *repositories.ParentRepository
	accountantRepo *repositories.AccountantRepository
	classRepo      *repositories.ClassRepository
	engine         *integrity.Engine
	logger         zerolog.Logger
}

// NewAccountService creates a new account service instance.
func NewAccountService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	parentRepo *repositories.ParentRepository,
	accountantRepo *repositories.AccountantRepository,
	classRepo *repositories.ClassRepository,
	engine *integrity.Engine,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		parentRepo:     parentRepo,
		accountantRepo: accountantRepo,
		classRepo:      classRepo,
		engine:         engine,
		logger:         logger,
	}
}

// GetAccount retrieves an account with its roles.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateAccount changes an account's name or email.
func (s *AccountService) UpdateAccount(ctx context.Context, id int64, name, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	user.Email = strings.ToLower(strings.TrimSpace(email))
	if user.Name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if user.Email == "" {
		return nil, apperrors.NewValidationError("email", "cannot be empty")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes an account and everything hanging off it: profiles,
// the profiles' records and association rows. Refused while the account still
// teaches a subject.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.engine.Delete(ctx, models.EntityAccount, id); err != nil {
		return err
	}
	s.logger.Info().Int64("accountId", id).Msg("Account deleted")
	return nil
}

// AssignRole grants a role to an account. Granting a role the account already
// holds is a no-op.
func (s *AccountService) AssignRole(ctx context.Context, accountID int64, role string) error {
	name := models.RoleName(strings.ToLower(strings.TrimSpace(role)))
	if !name.Valid() {
		return apperrors.NewValidationError("role", "unknown role name")
	}

	exists, err := s.userRepo.Exists(ctx, accountID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound(string(models.EntityAccount), accountID)
	}

	return s.userRepo.AssignRole(ctx, accountID, name)
}

// RevokeRole removes a role from an account.
func (s *AccountService) RevokeRole(ctx context.Context, accountID int64, role string) error {
	name := models.RoleName(strings.ToLower(strings.TrimSpace(role)))
	if !name.Valid() {
		return apperrors.NewValidationError("role", "unknown role name")
	}

	return s.userRepo.RevokeRole(ctx, accountID, name)
}
