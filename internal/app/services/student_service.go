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

// StudentService handles student profile operations. A student profile is the
// "profile completion" of an existing account: at most one per account, and
// it must land in an existing class.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	classRepo   *repositories.ClassRepository
	engine      *integrity.Engine
}

// NewStudentService creates a new student service instance.
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	classRepo *repositories.ClassRepository,
	engine *integrity.Engine,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		classRepo:   classRepo,
		engine:      engine,
	}
}

// CreateStudent attaches a student profile to an account.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}

	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	userExists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, apperrors.NewDanglingReference("userId")
	}

	classExists, err := s.classRepo.Exists(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !classExists {
		return nil, apperrors.NewDanglingReference("classId")
	}

	hasProfile, err := s.studentRepo.ExistsForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasProfile {
		return nil, apperrors.NewValidationError("userId", "account already has a student profile")
	}

	student := &models.Student{
		UserID:      req.UserID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
		ClassID:     req.ClassID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// GetStudent retrieves a student profile by id.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents retrieves all student profiles.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetStudentsByClass retrieves the students of one class.
func (s *StudentService) GetStudentsByClass(ctx context.Context, classID int64) ([]*models.Student, error) {
	exists, err := s.classRepo.Exists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityClassGroup), classID)
	}
	return s.studentRepo.GetByClass(ctx, classID)
}

// UpdateStudent changes a student profile. The owning account never changes.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}
	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	if req.ClassID != student.ClassID {
		classExists, err := s.classRepo.Exists(ctx, req.ClassID)
		if err != nil {
			return nil, err
		}
		if !classExists {
			return nil, apperrors.NewDanglingReference("classId")
		}
	}

	student.FirstName = strings.TrimSpace(req.FirstName)
	student.LastName = strings.TrimSpace(req.LastName)
	student.DateOfBirth = dob
	student.ClassID = req.ClassID

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student profile together with its absences, grades,
// payments, guardian links and transport enrollments.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityStudent, id)
}
