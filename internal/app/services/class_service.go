package services

import (
	"context"
	"strings"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// ClassService handles class group operations.
type ClassService struct {
	classRepo *repositories.ClassRepository
	engine    *integrity.Engine
}

// NewClassService creates a new class service instance.
func NewClassService(classRepo *repositories.ClassRepository, engine *integrity.Engine) *ClassService {
	return &ClassService{classRepo: classRepo, engine: engine}
}

func validateClass(class *models.ClassGroup) error {
	if strings.TrimSpace(class.Name) == "" {
		return apperrors.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(class.Level) == "" {
		return apperrors.NewValidationError("level", "cannot be empty")
	}
	return nil
}

// CreateClass creates a new class group.
func (s *ClassService) CreateClass(ctx context.Context, class *models.ClassGroup) error {
	if err := validateClass(class); err != nil {
		return err
	}
	return s.classRepo.Create(ctx, class)
}

// GetClass retrieves a class group by id.
func (s *ClassService) GetClass(ctx context.Context, id int64) (*models.ClassGroup, error) {
	return s.classRepo.GetByID(ctx, id)
}

// GetAllClasses retrieves all class groups.
func (s *ClassService) GetAllClasses(ctx context.Context) ([]*models.ClassGroup, error) {
	return s.classRepo.GetAll(ctx)
}

// UpdateClass changes a class group's attributes.
func (s *ClassService) UpdateClass(ctx context.Context, class *models.ClassGroup) error {
	if err := validateClass(class); err != nil {
		return err
	}
	return s.classRepo.Update(ctx, class)
}

// DeleteClass removes a class group. Refused while any student, subject or
// timetable entry still references it.
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityClassGroup, id)
}
