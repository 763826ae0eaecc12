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

// AbsenceService handles absence records.
type AbsenceService struct {
	absenceRepo *repositories.AbsenceRepository
	studentRepo *repositories.StudentRepository
	subjectRepo *repositories.SubjectRepository
	engine      *integrity.Engine
}

// NewAbsenceService creates a new absence service instance.
func NewAbsenceService(
	absenceRepo *repositories.AbsenceRepository,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
	engine *integrity.Engine,
) *AbsenceService {
	return &AbsenceService{
		absenceRepo: absenceRepo,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		engine:      engine,
	}
}

func (s *AbsenceService) validateReferences(ctx context.Context, studentID, subjectID int64) error {
	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return err
	}
	if !studentExists {
		return apperrors.NewDanglingReference("studentId")
	}

	subjectExists, err := s.subjectRepo.Exists(ctx, subjectID)
	if err != nil {
		return err
	}
	if !subjectExists {
		return apperrors.NewDanglingReference("subjectId")
	}

	return nil
}

// CreateAbsence records a new absence.
func (s *AbsenceService) CreateAbsence(ctx context.Context, req *dto.AbsenceRequest) (*models.Absence, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.StudentID, req.SubjectID); err != nil {
		return nil, err
	}

	absence := &models.Absence{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Date:      date,
		Reason:    trimReason(req.Reason),
	}
	if err := s.absenceRepo.Create(ctx, absence); err != nil {
		return nil, err
	}

	return absence, nil
}

// GetAbsence retrieves an absence record by id.
func (s *AbsenceService) GetAbsence(ctx context.Context, id int64) (*models.Absence, error) {
	return s.absenceRepo.GetByID(ctx, id)
}

// GetAllAbsences retrieves all absence records.
func (s *AbsenceService) GetAllAbsences(ctx context.Context) ([]*models.Absence, error) {
	return s.absenceRepo.GetAll(ctx)
}

// GetAbsencesByStudent retrieves the absence records of one student.
func (s *AbsenceService) GetAbsencesByStudent(ctx context.Context, studentID int64) ([]*models.Absence, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityStudent), studentID)
	}
	return s.absenceRepo.GetByStudent(ctx, studentID)
}

// UpdateAbsence changes an absence record.
func (s *AbsenceService) UpdateAbsence(ctx context.Context, id int64, req *dto.AbsenceRequest) (*models.Absence, error) {
	absence, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.StudentID, req.SubjectID); err != nil {
		return nil, err
	}

	absence.StudentID = req.StudentID
	absence.SubjectID = req.SubjectID
	absence.Date = date
	absence.Reason = trimReason(req.Reason)

	if err := s.absenceRepo.Update(ctx, absence); err != nil {
		return nil, err
	}
	return absence, nil
}

// DeleteAbsence removes an absence record. Nothing references absences, so
// the delete never blocks.
func (s *AbsenceService) DeleteAbsence(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityAbsence, id)
}

func trimReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
