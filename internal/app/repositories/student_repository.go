package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
	"github.com/emirkay/schoolregistry/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student profiles.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student profile. The students_user_id_key constraint
// enforces at most one student profile per account.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, first_name, last_name, date_of_birth, class_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.FirstName, student.LastName, student.DateOfBirth, student.ClassID,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		// A concurrent attach races past the service's existence check.
		if dberrors.IsUniqueViolationOn(err, "students_user_id_key") {
			return apperrors.NewValidationError("userId", "account already has a student profile")
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student profile by id.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, first_name, last_name, date_of_birth, class_id, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID, &student.UserID, &student.FirstName, &student.LastName,
		&student.DateOfBirth, &student.ClassID, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityStudent), id)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all student profiles.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, user_id, first_name, last_name, date_of_birth, class_id, created_at, updated_at
		FROM students
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetByClass retrieves the students enrolled in a class.
func (r *StudentRepository) GetByClass(ctx context.Context, classID int64) ([]*models.Student, error) {
	query := `
		SELECT id, user_id, first_name, last_name, date_of_birth, class_id, created_at, updated_at
		FROM students
		WHERE class_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// Update rewrites a student profile's attributes. The owning account is fixed
// at create time and never changes.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, date_of_birth = $3, class_id = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.DateOfBirth, student.ClassID, student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityStudent), student.ID)
	}

	return nil
}

// Exists reports whether a student row exists.
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, "students", id)
}

// ExistsForUser reports whether an account already has a student profile.
func (r *StudentRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking student profile: %w", err)
	}
	return exists, nil
}

func scanStudents(rows pgx.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID, &student.UserID, &student.FirstName, &student.LastName,
			&student.DateOfBirth, &student.ClassID, &student.CreatedAt, &student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, &student)
	}
	return students, rows.Err()
}
