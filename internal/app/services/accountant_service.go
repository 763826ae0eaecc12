package services

import (
	"context"
	"strings"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// AccountantService handles accountant profile operations.
type AccountantService struct {
	accountantRepo *repositories.AccountantRepository
	userRepo       *repositories.UserRepository
	engine         *integrity.Engine
}

// NewAccountantService creates a new accountant service instance.
func NewAccountantService(
	accountantRepo *repositories.AccountantRepository,
	userRepo *repositories.UserRepository,
	engine *integrity.Engine,
) *AccountantService {
	return &AccountantService{
		accountantRepo: accountantRepo,
		userRepo:       userRepo,
		engine:         engine,
	}
}

// CreateAccountant attaches an accountant profile to an account.
func (s *AccountantService) CreateAccountant(ctx context.Context, req *dto.CreateAccountantRequest) (*models.Accountant, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}

	userExists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, apperrors.NewDanglingReference("userId")
	}

	hasProfile, err := s.accountantRepo.ExistsForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasProfile {
		return nil, apperrors.NewValidationError("userId", "account already has an accountant profile")
	}

	accountant := &models.Accountant{
		UserID:    req.UserID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := s.accountantRepo.Create(ctx, accountant); err != nil {
		return nil, err
	}

	return accountant, nil
}

// GetAccountant retrieves an accountant profile by id.
func (s *AccountantService) GetAccountant(ctx context.Context, id int64) (*models.Accountant, error) {
	return s.accountantRepo.GetByID(ctx, id)
}

// GetAllAccountants retrieves all accountant profiles.
func (s *AccountantService) GetAllAccountants(ctx context.Context) ([]*models.Accountant, error) {
	return s.accountantRepo.GetAll(ctx)
}

// UpdateAccountant changes an accountant profile.
func (s *AccountantService) UpdateAccountant(ctx context.Context, id int64, req *dto.UpdateAccountantRequest) (*models.Accountant, error) {
	accountant, err := s.accountantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}

	accountant.FirstName = strings.TrimSpace(req.FirstName)
	accountant.LastName = strings.TrimSpace(req.LastName)
	accountant.Phone = strings.TrimSpace(req.Phone)

	if err := s.accountantRepo.Update(ctx, accountant); err != nil {
		return nil, err
	}
	return accountant, nil
}

// DeleteAccountant removes an accountant profile. Payments are not tied to
// the accountant who recorded them, so nothing blocks or follows the delete.
func (s *AccountantService) DeleteAccountant(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityAccountant, id)
}
