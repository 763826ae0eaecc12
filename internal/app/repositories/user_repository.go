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

// UserRepository handles database operations for accounts and their role
// assignments. It is the identity store the access gate reads from.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. The email uniqueness constraint is enforced
// by the database so it stays correct under concurrent writers.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Password).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, "users_email_key") {
			return &apperrors.DuplicateEmailError{Email: user.Email}
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves an account by id, including its role set.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityAccount), id)
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	roles, err := r.GetAccountRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

// GetByEmail retrieves an account by email for credential verification.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// Update rewrites the mutable account attributes.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, user.Name, user.Email, user.ID)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, "users_email_key") {
			return &apperrors.DuplicateEmailError{Email: user.Email}
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityAccount), user.ID)
	}

	return nil
}

// Exists reports whether an account row exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, "users", id)
}

// GetAccountRoles returns the role set an account holds. It implements the
// gate's RoleSource.
func (r *UserRepository) GetAccountRoles(ctx context.Context, accountID int64) ([]models.RoleName, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving account roles: %w", err)
	}
	defer rows.Close()

	var roles []models.RoleName
	for rows.Next() {
		var role models.RoleName
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// AssignRole adds a role to an account's set. Assigning a role the account
// already holds is a no-op.
func (r *UserRepository) AssignRole(ctx context.Context, accountID int64, role models.RoleName) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, accountID, string(role))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewDanglingReference("account_id")
		}
		return fmt.Errorf("error assigning role: %w", err)
	}
	// The SELECT matched no role row: unknown role name.
	if tag.RowsAffected() == 0 {
		if held, err := r.holdsRole(ctx, accountID, role); err != nil || held {
			return err
		}
		return apperrors.NewValidationError("role", "unknown role name")
	}

	return nil
}

// RevokeRole removes a role from an account's set.
func (r *UserRepository) RevokeRole(ctx context.Context, accountID int64, role models.RoleName) error {
	query := `
		DELETE FROM user_roles ur
		USING roles r
		WHERE ur.role_id = r.id AND ur.user_id = $1 AND r.name = $2
	`

	tag, err := r.db.Exec(ctx, query, accountID, string(role))
	if err != nil {
		return fmt.Errorf("error revoking role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("role assignment", accountID)
	}

	return nil
}

func (r *UserRepository) holdsRole(ctx context.Context, accountID int64, role models.RoleName) (bool, error) {
	var held bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = $2
		)
	`
	if err := r.db.QueryRow(ctx, query, accountID, string(role)).Scan(&held); err != nil {
		return false, fmt.Errorf("error checking role assignment: %w", err)
	}
	return held, nil
}
