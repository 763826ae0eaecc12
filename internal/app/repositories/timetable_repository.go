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

// TimetableRepository handles database operations for timetable entries.
// Times live in TIME columns and travel as "HH:MM" strings.
type TimetableRepository struct {
	db *pgxpool.Pool
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const timetableColumns = `
	id, class_id, subject_id, day,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	created_at, updated_at
`

// Create inserts a new timetable entry.
func (r *TimetableRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	query := `
		INSERT INTO timetables (class_id, subject_id, day, start_time, end_time)
		VALUES ($1, $2, $3, $4::time, $5::time)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.ClassID, entry.SubjectID, entry.Day, entry.StartTime, entry.EndTime,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating timetable entry: %w", err)
	}

	return nil
}

// GetByID retrieves a timetable entry by id.
func (r *TimetableRepository) GetByID(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE id = $1`

	var entry models.TimetableEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.ClassID, &entry.SubjectID, &entry.Day,
		&entry.StartTime, &entry.EndTime, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityTimetable), id)
		}
		return nil, fmt.Errorf("error retrieving timetable entry: %w", err)
	}

	return &entry, nil
}

// GetAll retrieves all timetable entries.
func (r *TimetableRepository) GetAll(ctx context.Context) ([]*models.TimetableEntry, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables ORDER BY class_id, day, start_time`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving timetable entries: %w", err)
	}
	defer rows.Close()

	return scanTimetableEntries(rows)
}

// GetByClass retrieves the weekly timetable of one class.
func (r *TimetableRepository) GetByClass(ctx context.Context, classID int64) ([]*models.TimetableEntry, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE class_id = $1 ORDER BY day, start_time`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class timetable: %w", err)
	}
	defer rows.Close()

	return scanTimetableEntries(rows)
}

// GetForAccount retrieves the timetable entries visible to an account: the
// classes of the students it owns or guards, plus the classes of the subjects
// it teaches.
func (r *TimetableRepository) GetForAccount(ctx context.Context, accountID int64) ([]*models.TimetableEntry, error) {
	query := `
		SELECT ` + timetableColumns + `
		FROM timetables t
		WHERE t.class_id IN (
			SELECT s.class_id FROM students s WHERE s.user_id = $1
			UNION
			SELECT s.class_id
			FROM students s
			JOIN parent_student ps ON ps.student_id = s.id
			JOIN parents p ON p.id = ps.parent_id
			WHERE p.user_id = $1
			UNION
			SELECT sub.class_id FROM subjects sub WHERE sub.teacher_id = $1
		)
		ORDER BY t.class_id, t.day, t.start_time
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving account timetable: %w", err)
	}
	defer rows.Close()

	return scanTimetableEntries(rows)
}

// Update rewrites a timetable entry's attributes.
func (r *TimetableRepository) Update(ctx context.Context, entry *models.TimetableEntry) error {
	query := `
		UPDATE timetables
		SET class_id = $1, subject_id = $2, day = $3, start_time = $4::time, end_time = $5::time, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		entry.ClassID, entry.SubjectID, entry.Day, entry.StartTime, entry.EndTime, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating timetable entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityTimetable), entry.ID)
	}

	return nil
}

func scanTimetableEntries(rows pgx.Rows) ([]*models.TimetableEntry, error) {
	var entries []*models.TimetableEntry
	for rows.Next() {
		var entry models.TimetableEntry
		err := rows.Scan(
			&entry.ID, &entry.ClassID, &entry.SubjectID, &entry.Day,
			&entry.StartTime, &entry.EndTime, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
