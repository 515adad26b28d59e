package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.ObservationRepository = (*ObservationRepo)(nil)

// ObservationRepo implements ObservationRepository over PostgreSQL.
type ObservationRepo struct {
	q Querier
}

// NewObservationRepository builds the adapter. Pass a pool or a tx.
func NewObservationRepository(q Querier) *ObservationRepo {
	return &ObservationRepo{q: q}
}

const observationColumns = `id, aircraft_id, reported_by, description, severity, status, resolved_by, resolved_at, created_at, updated_at`

// Create persists a new observation.
func (r *ObservationRepo) Create(o *entity.Observation) error {
	query := `
		INSERT INTO observations (` + observationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.AircraftID, o.ReportedBy, o.Description, o.Severity, o.Status,
		nullIfEmpty(o.ResolvedBy), o.ResolvedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// GetByID fetches an observation by ID, (nil, nil) when missing.
func (r *ObservationRepo) GetByID(id string) (*entity.Observation, error) {
	query := `SELECT ` + observationColumns + ` FROM observations WHERE id = $1`
	var o entity.Observation
	var resolvedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.AircraftID, &o.ReportedBy, &o.Description, &o.Severity, &o.Status,
		&resolvedBy, &o.ResolvedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get observation by id: %w", err)
	}
	o.ResolvedBy = emptyIfNull(resolvedBy)
	return &o, nil
}

// ListByAircraft returns observations for an aircraft, newest first.
// With openOnly only unresolved ones are returned.
func (r *ObservationRepo) ListByAircraft(aircraftID string, openOnly bool) ([]*entity.Observation, error) {
	query := `SELECT ` + observationColumns + ` FROM observations WHERE aircraft_id = $1`
	if openOnly {
		query += ` AND status <> 'resolved'`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, aircraftID)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Observation
	for rows.Next() {
		var o entity.Observation
		var resolvedBy *string
		if err := rows.Scan(&o.ID, &o.AircraftID, &o.ReportedBy, &o.Description, &o.Severity, &o.Status, &resolvedBy, &o.ResolvedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.ResolvedBy = emptyIfNull(resolvedBy)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update writes status and resolution fields.
func (r *ObservationRepo) Update(o *entity.Observation) error {
	query := `
		UPDATE observations SET description = $2, severity = $3, status = $4, resolved_by = $5, resolved_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Description, o.Severity, o.Status, nullIfEmpty(o.ResolvedBy), o.ResolvedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update observation: %w", err)
	}
	return nil
}
