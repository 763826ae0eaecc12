package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkay/schoolregistry/internal/app/auth"
	"github.com/emirkay/schoolregistry/internal/app/models"
)

// ScopeRepository resolves the row-scoping predicates the access gate needs.
// Each probe is a single EXISTS query tying the actor's account to the target
// row: through subjects.teacher_id for teachers, through parents and
// parent_student for guardians, and through students.user_id for students.
type ScopeRepository struct {
	db *pgxpool.Pool
}

// NewScopeRepository creates a new scope repository.
func NewScopeRepository(db *pgxpool.Pool) *ScopeRepository {
	return &ScopeRepository{db: db}
}

var _ auth.ScopeResolver = (*ScopeRepository)(nil)

// InTeacherScope reports whether the target belongs to a subject the account
// teaches, or for students and timetables, to a class the account teaches in.
func (r *ScopeRepository) InTeacherScope(ctx context.Context, accountID int64, resource models.EntityType, target auth.Target) (bool, error) {
	switch resource {
	case models.EntityAbsence:
		if target.ID != 0 {
			ok, err := r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM absences a
					JOIN subjects sub ON sub.id = a.subject_id
					WHERE a.id = $1 AND sub.teacher_id = $2
				)`, target.ID, accountID)
			if err != nil || !ok {
				return false, err
			}
			// An update may re-point the record; the destination subject
			// must be in scope as well as the current one.
			if target.SubjectID != 0 {
				return r.teachesSubject(ctx, accountID, target.SubjectID)
			}
			return true, nil
		}
		return r.teachesSubject(ctx, accountID, target.SubjectID)

	case models.EntityGrade:
		if target.ID != 0 {
			ok, err := r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM grades g
					JOIN subjects sub ON sub.id = g.subject_id
					WHERE g.id = $1 AND sub.teacher_id = $2
				)`, target.ID, accountID)
			if err != nil || !ok {
				return false, err
			}
			if target.SubjectID != 0 {
				return r.teachesSubject(ctx, accountID, target.SubjectID)
			}
			return true, nil
		}
		return r.teachesSubject(ctx, accountID, target.SubjectID)

	case models.EntityStudent:
		if target.ID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM students s
					JOIN subjects sub ON sub.class_id = s.class_id
					WHERE s.id = $1 AND sub.teacher_id = $2
				)`, target.ID, accountID)
		}
		if target.ClassID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM subjects sub
					WHERE sub.class_id = $1 AND sub.teacher_id = $2
				)`, target.ClassID, accountID)
		}
		return false, nil

	case models.EntityTimetable:
		if target.ID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM timetables t
					JOIN subjects sub ON sub.class_id = t.class_id
					WHERE t.id = $1 AND sub.teacher_id = $2
				)`, target.ID, accountID)
		}
		if target.ClassID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM subjects sub
					WHERE sub.class_id = $1 AND sub.teacher_id = $2
				)`, target.ClassID, accountID)
		}
		return false, nil
	}

	return false, nil
}

// InParentScope reports whether the target concerns a student linked to the
// account's guardian profile.
func (r *ScopeRepository) InParentScope(ctx context.Context, accountID int64, resource models.EntityType, target auth.Target) (bool, error) {
	switch resource {
	case models.EntityAbsence, models.EntityGrade, models.EntityPayment:
		studentID, err := r.studentOfRecord(ctx, resource, target)
		if err != nil || studentID == 0 {
			return false, err
		}
		return r.guardsStudent(ctx, accountID, studentID)

	case models.EntityStudent:
		if target.ID == 0 {
			return false, nil
		}
		return r.guardsStudent(ctx, accountID, target.ID)

	case models.EntityTimetable:
		if target.ID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM timetables t
					JOIN students s ON s.class_id = t.class_id
					JOIN parent_student ps ON ps.student_id = s.id
					JOIN parents p ON p.id = ps.parent_id
					WHERE t.id = $1 AND p.user_id = $2
				)`, target.ID, accountID)
		}
		if target.ClassID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM students s
					JOIN parent_student ps ON ps.student_id = s.id
					JOIN parents p ON p.id = ps.parent_id
					WHERE s.class_id = $1 AND p.user_id = $2
				)`, target.ClassID, accountID)
		}
		return false, nil
	}

	return false, nil
}

// InStudentScope reports whether the target is the account's own student row
// or a record hanging off it.
func (r *ScopeRepository) InStudentScope(ctx context.Context, accountID int64, resource models.EntityType, target auth.Target) (bool, error) {
	switch resource {
	case models.EntityAbsence, models.EntityGrade, models.EntityPayment:
		studentID, err := r.studentOfRecord(ctx, resource, target)
		if err != nil || studentID == 0 {
			return false, err
		}
		return r.ownsStudent(ctx, accountID, studentID)

	case models.EntityStudent:
		if target.ID == 0 {
			return false, nil
		}
		return r.ownsStudent(ctx, accountID, target.ID)

	case models.EntityTimetable:
		if target.ID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM timetables t
					JOIN students s ON s.class_id = t.class_id
					WHERE t.id = $1 AND s.user_id = $2
				)`, target.ID, accountID)
		}
		if target.ClassID != 0 {
			return r.probe(ctx, `
				SELECT EXISTS(
					SELECT 1 FROM students s
					WHERE s.class_id = $1 AND s.user_id = $2
				)`, target.ClassID, accountID)
		}
		return false, nil
	}

	return false, nil
}

// studentOfRecord resolves which student a record target concerns: the
// StudentID hint for creates, or the row's own student_id column otherwise.
func (r *ScopeRepository) studentOfRecord(ctx context.Context, resource models.EntityType, target auth.Target) (int64, error) {
	if target.StudentID != 0 {
		return target.StudentID, nil
	}
	if target.ID == 0 {
		return 0, nil
	}

	var studentID int64
	query := fmt.Sprintf(`SELECT student_id FROM %s WHERE id = $1`, resource.Table())
	err := r.db.QueryRow(ctx, query, target.ID).Scan(&studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		// A vanished row is out of everyone's scope.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolving %s owner: %w", resource, err)
	}

	return studentID, nil
}

func (r *ScopeRepository) teachesSubject(ctx context.Context, accountID, subjectID int64) (bool, error) {
	if subjectID == 0 {
		return false, nil
	}
	return r.probe(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM subjects WHERE id = $1 AND teacher_id = $2
		)`, subjectID, accountID)
}

func (r *ScopeRepository) guardsStudent(ctx context.Context, accountID, studentID int64) (bool, error) {
	return r.probe(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM parent_student ps
			JOIN parents p ON p.id = ps.parent_id
			WHERE ps.student_id = $1 AND p.user_id = $2
		)`, studentID, accountID)
}

func (r *ScopeRepository) ownsStudent(ctx context.Context, accountID, studentID int64) (bool, error) {
	return r.probe(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM students WHERE id = $1 AND user_id = $2
		)`, studentID, accountID)
}

func (r *ScopeRepository) probe(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("scope probe failed: %w", err)
	}
	return exists, nil
}
