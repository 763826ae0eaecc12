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

// TransportRepository handles database operations for transport routes.
type TransportRepository struct {
	db *pgxpool.Pool
}

// NewTransportRepository creates a new transport repository.
func NewTransportRepository(db *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{db: db}
}

// Create inserts a new transport route.
func (r *TransportRepository) Create(ctx context.Context, transport *models.Transport) error {
	query := `
		INSERT INTO transports (vehicle_number, driver_name, route_description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		transport.VehicleNumber, transport.DriverName, transport.RouteDescription,
	).Scan(&transport.ID, &transport.CreatedAt, &transport.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating transport: %w", err)
	}

	return nil
}

// GetByID retrieves a transport route by id.
func (r *TransportRepository) GetByID(ctx context.Context, id int64) (*models.Transport, error) {
	query := `
		SELECT id, vehicle_number, driver_name, route_description, created_at, updated_at
		FROM transports
		WHERE id = $1
	`

	var transport models.Transport
	err := r.db.QueryRow(ctx, query, id).Scan(
		&transport.ID, &transport.VehicleNumber, &transport.DriverName,
		&transport.RouteDescription, &transport.CreatedAt, &transport.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(string(models.EntityTransport), id)
		}
		return nil, fmt.Errorf("error retrieving transport: %w", err)
	}

	return &transport, nil
}

// GetAll retrieves all transport routes.
func (r *TransportRepository) GetAll(ctx context.Context) ([]*models.Transport, error) {
	query := `
		SELECT id, vehicle_number, driver_name, route_description, created_at, updated_at
		FROM transports
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving transports: %w", err)
	}
	defer rows.Close()

	var transports []*models.Transport
	for rows.Next() {
		var transport models.Transport
		err := rows.Scan(
			&transport.ID, &transport.VehicleNumber, &transport.DriverName,
			&transport.RouteDescription, &transport.CreatedAt, &transport.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		transports = append(transports, &transport)
	}

	return transports, rows.Err()
}

// Update rewrites a transport route's attributes.
func (r *TransportRepository) Update(ctx context.Context, transport *models.Transport) error {
	query := `
		UPDATE transports
		SET vehicle_number = $1, driver_name = $2, route_description = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query,
		transport.VehicleNumber, transport.DriverName, transport.RouteDescription, transport.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating transport: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound(string(models.EntityTransport), transport.ID)
	}

	return nil
}

// Exists reports whether a transport row exists.
func (r *TransportRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return rowExists(ctx, r.db, "transports", id)
}
