package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// PaymentRepository handles database operations for payment records.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (student_id, amount, payment_date, payment_type, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.StudentID, payment.Amount, payment.PaymentDate,
		payment.Type, payment.Status, payment.Reference,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment record by id.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `
		SELECT id, student_id, amount, payment_date, payment_type, status, reference, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID, &payment.StudentID, &payment.Amount, &payment.PaymentDate,
		&payment.Type, &payment.Status, &payment.Reference,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityPayment), id)
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}

	return &payment, nil
}

// GetByStudent retrieves the payment records of one student.
func (r *PaymentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	query := `
		SELECT id, student_id, amount, payment_date, payment_type, status, reference, created_at, updated_at
		FROM payments
		WHERE student_id = $1
		ORDER BY payment_date DESC, id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// GetAll retrieves all payment records.
func (r *PaymentRepository) GetAll(ctx context.Context) ([]*models.Payment, error) {
	query := `
		SELECT id, student_id, amount, payment_date, payment_type, status, reference, created_at, updated_at
		FROM payments
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// Update rewrites a payment record's mutable attributes. The reference is
// generated once at create time and never changes.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE payments
		SET student_id = $1, amount = $2, payment_date = $3, payment_type = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		payment.StudentID, payment.Amount, payment.PaymentDate,
		payment.Type, payment.Status, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityPayment), payment.ID)
	}

	return nil
}

func scanPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(
			&payment.ID, &payment.StudentID, &payment.Amount, &payment.PaymentDate,
			&payment.Type, &payment.Status, &payment.Reference,
			&payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}
