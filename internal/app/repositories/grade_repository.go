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

// GradeRepository handles database operations for grade records.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create inserts a new grade record.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, subject_id, grade, exam_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID, grade.SubjectID, grade.Value, grade.ExamDate,
	).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

// GetByID retrieves a grade record by id.
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, grade, exam_date, created_at, updated_at
		FROM grades
		WHERE id = $1
	`

	var grade models.Grade
	err := r.db.QueryRow(ctx, query, id).Scan(
		&grade.ID, &grade.StudentID, &grade.SubjectID, &grade.Value,
		&grade.ExamDate, &grade.CreatedAt, &grade.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityGrade), id)
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return &grade, nil
}

// GetByStudent retrieves the grade records of one student.
func (r *GradeRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, grade, exam_date, created_at, updated_at
		FROM grades
		WHERE student_id = $1
		ORDER BY exam_date DESC, id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student grades: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// GetAll retrieves all grade records.
func (r *GradeRepository) GetAll(ctx context.Context) ([]*models.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, grade, exam_date, created_at, updated_at
		FROM grades
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// Update rewrites a grade record's attributes.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET student_id = $1, subject_id = $2, grade = $3, exam_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		grade.StudentID, grade.SubjectID, grade.Value, grade.ExamDate, grade.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityGrade), grade.ID)
	}

	return nil
}

func scanGrades(rows pgx.Rows) ([]*models.Grade, error) {
	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.SubjectID, &grade.Value,
			&grade.ExamDate, &grade.CreatedAt, &grade.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}
	return grades, rows.Err()
}
