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

// AccountantRepository handles database operations for accountant profiles.
type AccountantRepository struct {
	db *pgxpool.Pool
}

// NewAccountantRepository creates a new accountant repository.
func NewAccountantRepository(db *pgxpool.Pool) *AccountantRepository {
	return &AccountantRepository{db: db}
}

// Create inserts a new accountant profile. The accountants_user_id_key
// constraint enforces at most one accountant profile per account.
func (r *AccountantRepository) Create(ctx context.Context, accountant *models.Accountant) error {
	query := `
		INSERT INTO accountants (user_id, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		accountant.UserID, accountant.FirstName, accountant.LastName, accountant.Phone,
	).Scan(&accountant.ID, &accountant.CreatedAt, &accountant.UpdatedAt)
	if err != nil {
		// A concurrent attach races past the service's existence check.
		if dberrors.IsUniqueViolationOn(err, "accountants_user_id_key") {
			return apperrors.NewValidationError("userId", "account already has an accountant profile")
		}
		return fmt.Errorf("error creating accountant: %w", err)
	}

	return nil
}

// GetByID retrieves an accountant profile by id.
func (r *AccountantRepository) GetByID(ctx context.Context, id int64) (*models.Accountant, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, created_at, updated_at
		FROM accountants
		WHERE id = $1
	`

	var accountant models.Accountant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&accountant.ID, &accountant.UserID, &accountant.FirstName, &accountant.LastName,
		&accountant.Phone, &accountant.CreatedAt, &accountant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityAccountant), id)
		}
		return nil, fmt.Errorf("error retrieving accountant: %w", err)
	}

	return &accountant, nil
}

// GetAll retrieves all accountant profiles.
func (r *AccountantRepository) GetAll(ctx context.Context) ([]*models.Accountant, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, created_at, updated_at
		FROM accountants
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving accountants: %w", err)
	}
	defer rows.Close()

	var accountants []*models.Accountant
	for rows.Next() {
		var accountant models.Accountant
		err := rows.Scan(
			&accountant.ID, &accountant.UserID, &accountant.FirstName, &accountant.LastName,
			&accountant.Phone, &accountant.CreatedAt, &accountant.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		accountants = append(accountants, &accountant)
	}

	return accountants, rows.Err()
}

// Update rewrites an accountant profile's attributes.
func (r *AccountantRepository) Update(ctx context.Context, accountant *models.Accountant) error {
	query := `
		UPDATE accountants
		SET first_name = $1, last_name = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query,
		accountant.FirstName, accountant.LastName, accountant.Phone, accountant.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating accountant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityAccountant), accountant.ID)
	}

	return nil
}

// ExistsForUser reports whether an account already has an accountant profile.
func (r *AccountantRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accountants WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking accountant profile: %w", err)
	}
	return exists, nil
}
