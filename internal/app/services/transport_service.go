package services

import (
	"context"
	"strings"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/config"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// TransportService handles transport routes and student enrollments.
type TransportService struct {
	transportRepo   *repositories.TransportRepository
	studentRepo     *repositories.StudentRepository
	associationRepo *repositories.AssociationRepository
	engine          *integrity.Engine
	overlapPolicy   string
}

// NewTransportService creates a new transport service instance.
func NewTransportService(
	transportRepo *repositories.TransportRepository,
	studentRepo *repositories.StudentRepository,
	associationRepo *repositories.AssociationRepository,
	engine *integrity.Engine,
	overlapPolicy string,
) *TransportService {
	return &TransportService{
		transportRepo:   transportRepo,
		studentRepo:     studentRepo,
		associationRepo: associationRepo,
		engine:          engine,
		overlapPolicy:   overlapPolicy,
	}
}

func validateTransport(transport *models.Transport) error {
	if strings.TrimSpace(transport.VehicleNumber) == "" {
		return apperrors.NewValidationError("vehicleNumber", "cannot be empty")
	}
	if strings.TrimSpace(transport.DriverName) == "" {
		return apperrors.NewValidationError("driverName", "cannot be empty")
	}
	return nil
}

// CreateTransport creates a new transport route.
func (s *TransportService) CreateTransport(ctx context.Context, transport *models.Transport) error {
	if err := validateTransport(transport); err != nil {
		return err
	}
	return s.transportRepo.Create(ctx, transport)
}

// GetTransport retrieves a transport route by id.
func (s *TransportService) GetTransport(ctx context.Context, id int64) (*models.Transport, error) {
	return s.transportRepo.GetByID(ctx, id)
}

// GetAllTransports retrieves all transport routes.
func (s *TransportService) GetAllTransports(ctx context.Context) ([]*models.Transport, error) {
	return s.transportRepo.GetAll(ctx)
}

// UpdateTransport changes a transport route's attributes.
func (s *TransportService) UpdateTransport(ctx context.Context, transport *models.Transport) error {
	if err := validateTransport(transport); err != nil {
		return err
	}
	return s.transportRepo.Update(ctx, transport)
}

// DeleteTransport removes a transport route. Refused while any student is
// still enrolled on it.
func (s *TransportService) DeleteTransport(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityTransport, id)
}

// Enroll puts a student on a transport route for a validity interval. The end
// date, when present, must not precede the start. Under the
// reject_open_ended policy a second open-ended enrollment on the same route
// is refused.
func (s *TransportService) Enroll(ctx context.Context, transportID int64, req *dto.EnrollTransportRequest) (*models.TransportEnrollment, error) {
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}

	enrollment := &models.TransportEnrollment{
		StudentID:   req.StudentID,
		TransportID: transportID,
		StartDate:   startDate,
	}
	if req.EndDate != nil {
		endDate, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			return nil, err
		}
		enrollment.EndDate = &endDate
	}

	if err := validateInterval(enrollment.StartDate, enrollment.EndDate); err != nil {
		return nil, err
	}

	transportExists, err := s.transportRepo.Exists(ctx, transportID)
	if err != nil {
		return nil, err
	}
	if !transportExists {
		return nil, apperrors.NewNotFound(string(models.EntityTransport), transportID)
	}

	studentExists, err := s.studentRepo.Exists(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !studentExists {
		return nil, apperrors.NewDanglingReference("studentId")
	}

	if s.overlapPolicy == config.TransportOverlapRejectOpenEnded && enrollment.Open() {
		open, err := s.associationRepo.HasOpenEnrollment(ctx, req.StudentID, transportID)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, apperrors.NewValidationError("endDate", "student already has an open-ended enrollment on this transport")
		}
	}

	if err := s.associationRepo.EnrollTransport(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Withdraw removes a student's enrollments on a transport route.
func (s *TransportService) Withdraw(ctx context.Context, transportID, studentID int64) error {
	return s.associationRepo.WithdrawTransport(ctx, studentID, transportID)
}

// GetEnrollments retrieves a student's transport enrollments.
func (s *TransportService) GetEnrollments(ctx context.Context, studentID int64) ([]*models.TransportEnrollment, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityStudent), studentID)
	}
	return s.associationRepo.EnrollmentsOfStudent(ctx, studentID)
}
