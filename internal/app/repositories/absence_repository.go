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

// AbsenceRepository handles database operations for absence records.
type AbsenceRepository struct {
	db *pgxpool.Pool
}

// NewAbsenceRepository creates a new absence repository.
func NewAbsenceRepository(db *pgxpool.Pool) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// Create inserts a new absence record.
func (r *AbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	query := `
		INSERT INTO absences (student_id, subject_id, date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		absence.StudentID, absence.SubjectID, absence.Date, absence.Reason,
	).Scan(&absence.ID, &absence.CreatedAt, &absence.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating absence: %w", err)
	}

	return nil
}

// GetByID retrieves an absence record by id.
func (r *AbsenceRepository) GetByID(ctx context.Context, id int64) (*models.Absence, error) {
	query := `
		SELECT id, student_id, subject_id, date, reason, created_at, updated_at
		FROM absences
		WHERE id = $1
	`

	var absence models.Absence
	err := r.db.QueryRow(ctx, query, id).Scan(
		&absence.ID, &absence.StudentID, &absence.SubjectID, &absence.Date,
		&absence.Reason, &absence.CreatedAt, &absence.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityAbsence), id)
		}
		return nil, fmt.Errorf("error retrieving absence: %w", err)
	}

	return &absence, nil
}

// GetByStudent retrieves the absence records of one student.
func (r *AbsenceRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Absence, error) {
	query := `
		SELECT id, student_id, subject_id, date, reason, created_at, updated_at
		FROM absences
		WHERE student_id = $1
		ORDER BY date DESC, id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student absences: %w", err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// GetAll retrieves all absence records.
func (r *AbsenceRepository) GetAll(ctx context.Context) ([]*models.Absence, error) {
	query := `
		SELECT id, student_id, subject_id, date, reason, created_at, updated_at
		FROM absences
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving absences: %w", err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// Update rewrites an absence record's attributes.
func (r *AbsenceRepository) Update(ctx context.Context, absence *models.Absence) error {
	query := `
		UPDATE absences
		SET student_id = $1, subject_id = $2, date = $3, reason = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		absence.StudentID, absence.SubjectID, absence.Date, absence.Reason, absence.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating absence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityAbsence), absence.ID)
	}

	return nil
}

func scanAbsences(rows pgx.Rows) ([]*models.Absence, error) {
	var absences []*models.Absence
	for rows.Next() {
		var absence models.Absence
		err := rows.Scan(
			&absence.ID, &absence.StudentID, &absence.SubjectID, &absence.Date,
			&absence.Reason, &absence.CreatedAt, &absence.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		absences = append(absences, &absence)
	}
	return absences, rows.Err()
}
