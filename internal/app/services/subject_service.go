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

// SubjectService handles subject operations. A subject ties a class to the
// account teaching it; while it exists neither side can be deleted.
type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
	classRepo   *repositories.ClassRepository
	userRepo    *repositories.UserRepository
	engine      *integrity.Engine
}

// NewSubjectService creates a new subject service instance.
func NewSubjectService(
	subjectRepo *repositories.SubjectRepository,
	classRepo *repositories.ClassRepository,
	userRepo *repositories.UserRepository,
	engine *integrity.Engine,
) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		classRepo:   classRepo,
		userRepo:    userRepo,
		engine:      engine,
	}
}

func (s *SubjectService) validateReferences(ctx context.Context, req *dto.SubjectRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "cannot be empty")
	}

	classExists, err := s.classRepo.Exists(ctx, req.ClassID)
	if err != nil {
		return err
	}
	if !classExists {
		return apperrors.NewDanglingReference("classId")
	}

	teacherExists, err := s.userRepo.Exists(ctx, req.TeacherID)
	if err != nil {
		return err
	}
	if !teacherExists {
		return apperrors.NewDanglingReference("teacherId")
	}

	return nil
}

// CreateSubject creates a new subject.
func (s *SubjectService) CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*models.Subject, error) {
	if err := s.validateReferences(ctx, req); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:      strings.TrimSpace(req.Name),
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// GetSubject retrieves a subject by id.
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// GetAllSubjects retrieves all subjects.
func (s *SubjectService) GetAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

// UpdateSubject changes a subject's attributes.
func (s *SubjectService) UpdateSubject(ctx context.Context, id int64, req *dto.SubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, req); err != nil {
		return nil, err
	}

	subject.Name = strings.TrimSpace(req.Name)
	subject.ClassID = req.ClassID
	subject.TeacherID = req.TeacherID

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject. Refused while any absence, grade or
// timetable entry still references it.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntitySubject, id)
}
