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

// ParentRepository handles database operations for guardian profiles.
type ParentRepository struct {
	db *pgxpool.Pool
}

// NewParentRepository creates a new parent repository.
func NewParentRepository(db *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{db: db}
}

// Create inserts a new guardian profile. The parents_user_id_key constraint
// enforces at most one guardian profile per account.
func (r *ParentRepository) Create(ctx context.Context, parent *models.ParentGuardian) error {
	query := `
		INSERT INTO parents (user_id, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		parent.UserID, parent.FirstName, parent.LastName, parent.Phone,
	).Scan(&parent.ID, &parent.CreatedAt, &parent.UpdatedAt)
	if err != nil {
		// A concurrent attach races past the service's existence check.
		if dberrors.IsUniqueViolationOn(err, "parents_user_id_key") {
			return apperrors.NewValidationError("userId", "account already has a parent profile")
		}
		return fmt.Errorf("error creating parent: %w", err)
	}

	return nil
}

// GetByID retrieves a guardian profile by id.
func (r *ParentRepository) GetByID(ctx context.Context, id int64) (*models.ParentGuardian, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, created_at, updated_at
		FROM parents
		WHERE id = $1
	`

	var parent models.ParentGuardian
	err := r.db.QueryRow(ctx, query, id).Scan(
		&parent.ID, &parent.UserID, &parent.FirstName, &parent.LastName,
		&parent.Phone, &parent.CreatedAt, &parent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityParent), id)
		}
		return nil, fmt.Errorf("error retrieving parent: %w", err)
	}

	return &parent, nil
}

// GetAll retrieves all guardian profiles.
func (r *ParentRepository) GetAll(ctx context.Context) ([]*models.ParentGuardian, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, created_at, updated_at
		FROM parents
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving parents: %w", err)
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

// Update rewrites a guardian profile's attributes.
func (r *ParentRepository) Update(ctx context.Context, parent *models.ParentGuardian) error {
	query := `
		UPDATE parents
		SET first_name = $1, last_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, parent.FirstName, parent.LastName, parent.Phone, parent.ID)
	if err != nil {
		return fmt.Errorf("error updating parent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityParent), parent.ID)
	}

	return nil
}

// Exists reports whether a parent row exists.
func (r *ParentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, "parents", id)
}

// ExistsForUser reports whether an account already has a guardian profile.
func (r *ParentRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM parents WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking parent profile: %w", err)
	}
	return exists, nil
}
