package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.AircraftRepository = (*AircraftRepo)(nil)

// AircraftRepo implements AircraftRepository over PostgreSQL.
type AircraftRepo struct {
	q Querier
}

// NewAircraftRepository builds the adapter. Pass a pool or a tx.
func NewAircraftRepository(q Querier) *AircraftRepo {
	return &AircraftRepo{q: q}
}

const aircraftColumns = `id, registration, model, status, tach_time, hobbs_time, hourly_rate, requires_authorization, created_at, updated_at`

// Create persists a fleet aircraft.
func (r *AircraftRepo) Create(a *entity.Aircraft) error {
	query := `
		INSERT INTO aircraft (` + aircraftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Registration, a.Model, a.Status, a.TachTime, a.HobbsTime, a.HourlyRate,
		a.RequiresAuthorization, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert aircraft: %w", err)
	}
	return nil
}

// GetByID fetches an aircraft by ID, (nil, nil) when missing.
func (r *AircraftRepo) GetByID(id string) (*entity.Aircraft, error) {
	query := `SELECT ` + aircraftColumns + ` FROM aircraft WHERE id = $1`
	var a entity.Aircraft
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Registration, &a.Model, &a.Status, &a.TachTime, &a.HobbsTime, &a.HourlyRate,
		&a.RequiresAuthorization, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aircraft by id: %w", err)
	}
	return &a, nil
}

// List returns the fleet ordered by registration.
func (r *AircraftRepo) List(limit, offset int) ([]*entity.Aircraft, error) {
	query := `SELECT ` + aircraftColumns + ` FROM aircraft ORDER BY registration LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	defer rows.Close()
	var list []*entity.Aircraft
	for rows.Next() {
		var a entity.Aircraft
		if err := rows.Scan(&a.ID, &a.Registration, &a.Model, &a.Status, &a.TachTime, &a.HobbsTime, &a.HourlyRate, &a.RequiresAuthorization, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan aircraft: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update writes the mutable aircraft fields, meters included.
func (r *AircraftRepo) Update(a *entity.Aircraft) error {
	query := `
		UPDATE aircraft SET registration = $2, model = $3, status = $4, tach_time = $5, hobbs_time = $6,
			hourly_rate = $7, requires_authorization = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Registration, a.Model, a.Status, a.TachTime, a.HobbsTime, a.HourlyRate,
		a.RequiresAuthorization, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update aircraft: %w", err)
	}
	return nil
}
