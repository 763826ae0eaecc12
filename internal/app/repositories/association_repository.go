package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
	"github.com/emirkay/schoolregistry/internal/pkg/dberrors"
)

// AssociationRepository handles the parent_student and student_transport
// pivot tables.
type AssociationRepository struct {
	db *pgxpool.Pool
}

// NewAssociationRepository creates a new association repository.
func NewAssociationRepository(db *pgxpool.Pool) *AssociationRepository {
	return &AssociationRepository{db: db}
}

// LinkParentStudent attaches a guardian to a student. Re-linking an existing
// pair is a no-op.
func (r *AssociationRepository) LinkParentStudent(ctx context.Context, parentID, studentID int64) error {
	query := `
		INSERT INTO parent_student (parent_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (parent_id, student_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, parentID, studentID); err != nil {
		return fmt.Errorf("error linking parent to student: %w", err)
	}

	return nil
}

// UnlinkParentStudent detaches a guardian from a student.
func (r *AssociationRepository) UnlinkParentStudent(ctx context.Context, parentID, studentID int64) error {
	query := `DELETE FROM parent_student WHERE parent_id = $1 AND student_id = $2`

	tag, err := r.db.Exec(ctx, query, parentID, studentID)
	if err != nil {
		return fmt.Errorf("error unlinking parent from student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("parent-student link", studentID)
	}

	return nil
}

// StudentsOfParent retrieves the students attached to a guardian.
func (r *AssociationRepository) StudentsOfParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.first_name, s.last_name, s.date_of_birth, s.class_id, s.created_at, s.updated_at
		FROM students s
		JOIN parent_student ps ON ps.student_id = s.id
		WHERE ps.parent_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving parent's students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// ParentsOfStudent retrieves the guardians attached to a student.
func (r *AssociationRepository) ParentsOfStudent(ctx context.Context, studentID int64) ([]*models.ParentGuardian, error) {
	query := `
		SELECT p.id, p.user_id, p.first_name, p.last_name, p.phone, p.created_at, p.updated_at
		FROM parents p
		JOIN parent_student ps ON ps.parent_id = p.id
		WHERE ps.student_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student's parents: %w", err)
	}
	defer rows.Close()

	var parents []*models.ParentGuardian
	for rows.Next() {
		var parent models.ParentGuardian
		err := rows.Scan(
			&parent.ID, &parent.UserID, &parent.FirstName, &parent.LastName,
			&parent.Phone, &parent.CreatedAt, &parent.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		parents = append(parents, &parent)
	}

	return parents, rows.Err()
}

// EnrollTransport inserts a student_transport enrollment row.
func (r *AssociationRepository) EnrollTransport(ctx context.Context, enrollment *models.TransportEnrollment) error {
	query := `
		INSERT INTO student_transport (student_id, transport_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		enrollment.StudentID, enrollment.TransportID, enrollment.StartDate, enrollment.EndDate,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return &apperrors.DuplicateLinkError{
				Kind:    "transport enrollment",
				LeftID:  enrollment.StudentID,
				RightID: enrollment.TransportID,
			}
		}
		return fmt.Errorf("error enrolling student on transport: %w", err)
	}

	return nil
}

// WithdrawTransport removes a student's enrollment rows for one transport.
func (r *AssociationRepository) WithdrawTransport(ctx context.Context, studentID, transportID int64) error {
	query := `DELETE FROM student_transport WHERE student_id = $1 AND transport_id = $2`

	tag, err := r.db.Exec(ctx, query, studentID, transportID)
	if err != nil {
		return fmt.Errorf("error withdrawing student from transport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("transport enrollment", studentID)
	}

	return nil
}

// EnrollmentsOfStudent retrieves a student's transport enrollments.
func (r *AssociationRepository) EnrollmentsOfStudent(ctx context.Context, studentID int64) ([]*models.TransportEnrollment, error) {
	query := `
		SELECT student_id, transport_id, start_date, end_date
		FROM student_transport
		WHERE student_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.TransportEnrollment
	for rows.Next() {
		var e models.TransportEnrollment
		if err := rows.Scan(&e.StudentID, &e.TransportID, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &e)
	}

	return enrollments, rows.Err()
}

// HasOpenEnrollment reports whether the student already has an open-ended
// enrollment on the transport.
func (r *AssociationRepository) HasOpenEnrollment(ctx context.Context, studentID, transportID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM student_transport
			WHERE student_id = $1 AND transport_id = $2 AND end_date IS NULL
		)
	`

	if err := r.db.QueryRow(ctx, query, studentID, transportID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking open enrollment: %w", err)
	}

	return exists, nil
}
