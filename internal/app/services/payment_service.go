package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/emirkay/schoolregistry/internal/app/integrity"
	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/app/repositories"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// PaymentService handles payment records. Each payment gets a generated
// receipt reference at create time.
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	studentRepo *repositories.StudentRepository
	engine      *integrity.Engine
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service instance.
func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	studentRepo *repositories.StudentRepository,
	engine *integrity.Engine,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		engine:      engine,
		logger:      logger,
	}
}

// parsePaymentFields validates the shared create/update payment fields.
func parsePaymentFields(req *dto.UpdatePaymentRequest) (decimal.Decimal, models.PaymentType, models.PaymentStatus, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return decimal.Decimal{}, "", "", err
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, "", "", apperrors.NewValidationError("amount", "must be positive")
	}

	paymentType := models.PaymentType(req.Type)
	if !paymentType.Valid() {
		return decimal.Decimal{}, "", "", apperrors.NewValidationError("type", "unknown payment type")
	}

	status := models.PaymentStatus(req.Status)
	if !status.Valid() {
		return decimal.Decimal{}, "", "", apperrors.NewValidationError("status", "unknown payment status")
	}

	return amount, paymentType, status, nil
}

// CreatePayment records a payment against a student.
func (s *PaymentService) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	amount, paymentType, status, err := parsePaymentFields(&dto.UpdatePaymentRequest{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Type:        req.Type,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}

	paymentDate, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	studentExists, err := s.studentRepo.Exists(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !studentExists {
		return nil, apperrors.NewDanglingReference("studentId")
	}

	payment := &models.Payment{
		StudentID:   req.StudentID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Type:        paymentType,
		Status:      status,
		Reference:   uuid.NewString(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("paymentId", payment.ID).
		Str("reference", payment.Reference).
		Msg("Payment recorded")

	return payment, nil
}

// GetPayment retrieves a payment record by id.
func (s *PaymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// GetAllPayments retrieves all payment records.
func (s *PaymentService) GetAllPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.paymentRepo.GetAll(ctx)
}

// GetPaymentsByStudent retrieves the payment records of one student.
func (s *PaymentService) GetPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	exists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound(string(models.EntityStudent), studentID)
	}
	return s.paymentRepo.GetByStudent(ctx, studentID)
}

// UpdatePayment changes a payment's mutable attributes. The receipt reference
// is immutable.
func (s *PaymentService) UpdatePayment(ctx context.Context, id int64, req *dto.UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, paymentType, status, err := parsePaymentFields(req)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	if req.StudentID != payment.StudentID {
		studentExists, err := s.studentRepo.Exists(ctx, req.StudentID)
		if err != nil {
			return nil, err
		}
		if !studentExists {
			return nil, apperrors.NewDanglingReference("studentId")
		}
	}

	payment.StudentID = req.StudentID
	payment.Amount = amount
	payment.PaymentDate = paymentDate
	payment.Type = paymentType
	payment.Status = status

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a payment record.
func (s *PaymentService) DeletePayment(ctx context.Context, id int64) error {
	return s.engine.Delete(ctx, models.EntityPayment, id)
}
