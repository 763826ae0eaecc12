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

// ParentService handles guardian profiles and the parent-student link.
type ParentService struct {
	parentRepo      *repositories.ParentRepository
	studentRepo     *repositories.StudentRepository
	userRepo        *repositories.UserRepository
	associationRepo *repositories.AssociationRepository
	engine          *integrity.Engine
}

// NewParentService creates a new parent service instance.
func NewParentService(
	parentRepo *repositories.ParentRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	associationRepo *repositories.AssociationRepository,
	engine *integrity.Engine,
) *ParentService {
	return &ParentService{
		parentRepo:      parentRepo,
		studentRepo:     studentRepo,
		userRepo:        userRepo,
		associationRepo: associationRepo,
		engine:          engine,
	}
}

// CreateParent attaches a guardian profile to an account.
func (s *ParentService) CreateParent(ctx context.Context, req *dto.CreateParentRequest) (*models.ParentGuardian, error) {
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

	hasProfile, err := s.parentRepo.ExistsForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasProfile {
		return nil, apperrors.NewValidationError("userId", "account already has a parent profile")
	}

	parent := &models.ParentGuardian{
		UserID:    req.UserID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if err := s.parentRepo.Create(ctx, parent); err != nil {
		return nil, err
	}

	return parent, nil
}

// GetParent retrieves a guardian profile by id.
func (s *ParentService) GetParent(ctx context.Context, id int64) (*models.ParentGuardian, error) {
	return s.parentRepo.GetByID(ctx, id)
}

// GetAllParents retrieves all guardian profiles.
func (s *ParentService) GetAllParents(ctx context.Context) ([]*models.ParentGuardian, error) {
	return s.parentRepo.GetAll(ctx)
}

// UpdateParent changes a guardian profile.
func (s *ParentService) UpdateParent(ctx context.Context, id int64, req *dto.UpdateParentRequest) (*models.ParentGuardian, error) {
	parent, err := s.parentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}

	parent.FirstName = strings.TrimSpace(req.FirstName)
	parent.LastName = strings.TrimSpace(req.LastName)
	parent.Phone = strings.TrimSpace(req.Phone)

	if err := s.parentRepo.Update(ctx, parent); err != nil {
		return nil, err
	}
	return parent, nil
}

// DeleteParent removes a guardian profile and its student links. The linked
// students themselves survive.
func (s *ParentService) DeleteParent(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityParent, id)
}

// LinkStudent attaches a student to a guardian. Linking an already linked
// pair succeeds without effect.
func (s *ParentService) LinkStudent(ctx context.Context, parentID, studentID int64) error {
	parentExists, err := s.parentRepo.Exists(ctx, parentID)
	if err != nil {
		return err
	}
	if !parentExists {
		return apperrors.NewNotFound(string(models.EntityParent), parentID)
	}

	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return apperrors.NewDanglingReference("studentId")
	}

	return s.associationRepo.LinkParentStudent(ctx, parentID, studentID)
}

// UnlinkStudent detaches a student from a guardian.
func (s *ParentService) UnlinkStudent(ctx context.Context, parentID, studentID int64) error {
	return s.associationRepo.UnlinkParentStudent(ctx, parentID, studentID)
}

// GetGuardiansOfStudent retrieves the guardians linked to a student.
func (s *ParentService) GetGuardiansOfStudent(ctx context.Context, studentID int64) ([]*models.ParentGuardian, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityStudent), studentID)
	}
	return s.associationRepo.ParentsOfStudent(ctx, studentID)
}

// GetStudents retrieves the students linked to a guardian.
func (s *ParentService) GetStudents(ctx context.Context, parentID int64) ([]*models.Student, error) {
	exists, err := s.parentRepo.Exists(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityParent), parentID)
	}
	return s.associationRepo.StudentsOfParent(ctx, parentID)
}
