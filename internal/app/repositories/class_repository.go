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

// ClassRepository handles database operations for class groups.
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class group.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassGroup) error {
	query := `
		INSERT INTO classes (name, level)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, class.Name, class.Level).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class group by id.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.ClassGroup, error) {
	query := `
		SELECT id, name, level, created_at, updated_at
		FROM classes
		WHERE id = $1
	`

	var class models.ClassGroup
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID, &class.Name, &class.Level, &class.CreatedAt, &class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityClassGroup), id)
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// GetAll retrieves all class groups.
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.ClassGroup, error) {
	query := `
		SELECT id, name, level, created_at, updated_at
		FROM classes
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.ClassGroup
	for rows.Next() {
		var class models.ClassGroup
		if err := rows.Scan(&class.ID, &class.Name, &class.Level, &class.CreatedAt, &class.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	return classes, rows.Err()
}

// Update rewrites a class group's attributes.
func (r *ClassRepository) Update(ctx context.Context, class *models.ClassGroup) error {
	query := `
		UPDATE classes
		SET name = $1, level = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, class.Name, class.Level, class.ID)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityClassGroup), class.ID)
	}

	return nil
}

// Exists reports whether a class row exists.
func (r *ClassRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, "classes", id)
}
