package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// gradeCeiling matches the NUMERIC(5,2) column: three integer digits.
var gradeCeiling = decimal.NewFromInt(1000)

// GradeService handles grade records.
type GradeService struct {
	gradeRepo   *repositories.GradeRepository
	studentRepo *repositories.StudentRepository
	subjectRepo *repositories.SubjectRepository
	engine      *integrity.Engine
}

// NewGradeService creates a new grade service instance.
func NewGradeService(
	gradeRepo *repositories.GradeRepository,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
	engine *integrity.Engine,
) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		engine:      engine,
	}
}

// parseGradeValue validates a grade value string into a fixed-point decimal.
func parseGradeValue(raw string) (decimal.Decimal, error) {
	value, err := parseAmount("value", raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if value.IsNegative() {
		return decimal.Decimal{}, apperrors.NewValidationError("value", "must not be negative")
	}
	if value.GreaterThanOrEqual(gradeCeiling) {
		return decimal.Decimal{}, apperrors.NewValidationError("value", "out of range")
	}
	return value, nil
}

func (s *GradeService) validateReferences(ctx context.Context, studentID, subjectID int64) error {
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

// CreateGrade records a new grade.
func (s *GradeService) CreateGrade(ctx context.Context, req *dto.GradeRequest) (*models.Grade, error) {
	value, err := parseGradeValue(req.Value)
	if err != nil {
		return nil, err
	}
	examDate, err := parseDate("examDate", req.ExamDate)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.StudentID, req.SubjectID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Value:     value,
		ExamDate:  examDate,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

// GetGrade retrieves a grade record by id.
func (s *GradeService) GetGrade(ctx context.Context, id int64) (*models.Grade, error) {
	return s.gradeRepo.GetByID(ctx, id)
}

// GetAllGrades retrieves all grade records.
func (s *GradeService) GetAllGrades(ctx context.Context) ([]*models.Grade, error) {
	return s.gradeRepo.GetAll(ctx)
}

// GetGradesByStudent retrieves the grade records of one student.
func (s *GradeService) GetGradesByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityStudent), studentID)
	}
	return s.gradeRepo.GetByStudent(ctx, studentID)
}

// UpdateGrade changes a grade record.
func (s *GradeService) UpdateGrade(ctx context.Context, id int64, req *dto.GradeRequest) (*models.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	value, err := parseGradeValue(req.Value)
	if err != nil {
		return nil, err
	}
	examDate, err := parseDate("examDate", req.ExamDate)
	if err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, req.StudentID, req.SubjectID); err != nil {
		return nil, err
	}

	grade.StudentID = req.StudentID
	grade.SubjectID = req.SubjectID
	grade.Value = value
	grade.ExamDate = examDate

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// DeleteGrade removes a grade record.
func (s *GradeService) DeleteGrade(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityGrade, id)
}
