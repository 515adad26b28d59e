package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.AuthorizationRepository = (*AuthorizationRepo)(nil)

// AuthorizationRepo implements AuthorizationRepository over PostgreSQL.
type AuthorizationRepo struct {
	q Querier
}

// NewAuthorizationRepository builds the adapter. Pass a pool or a tx.
func NewAuthorizationRepository(q Querier) *AuthorizationRepo {
	return &AuthorizationRepo{q: q}
}

const authorizationColumns = `id, booking_id, student_id, instructor_id, status,
	fuel_state, oil_state, runway_in_use, weather, exercises_planned, signature, reject_reason,
	submitted_at, decided_at, decided_by, created_at, updated_at`

// Create persists a new authorization.
func (r *AuthorizationRepo) Create(a *entity.FlightAuthorization) error {
	query := `
		INSERT INTO flight_authorizations (` + authorizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.BookingID, a.StudentID, nullIfEmpty(a.InstructorID), a.Status,
		a.FuelState, a.OilState, a.RunwayInUse, a.Weather, a.ExercisesPlanned, a.Signature, a.RejectReason,
		a.SubmittedAt, a.DecidedAt, nullIfEmpty(a.DecidedBy), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert authorization: %w", err)
	}
	return nil
}

// GetByID fetches an authorization by ID, (nil, nil) when missing.
func (r *AuthorizationRepo) GetByID(id string) (*entity.FlightAuthorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM flight_authorizations WHERE id = $1`
	a, err := scanAuthorization(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get authorization by id: %w", err)
	}
	return a, nil
}

// GetApprovedByBooking returns the approved authorization for a booking,
// (nil, nil) when none exists.
func (r *AuthorizationRepo) GetApprovedByBooking(bookingID string) (*entity.FlightAuthorization, error) {
	query := `
		SELECT ` + authorizationColumns + `
		FROM flight_authorizations
		WHERE booking_id = $1 AND status = 'approved'
		ORDER BY decided_at DESC LIMIT 1`
	a, err := scanAuthorization(r.q.QueryRow(context.Background(), query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approved authorization: %w", err)
	}
	return a, nil
}

// ListByStudent returns a student's authorizations, newest first.
func (r *AuthorizationRepo) ListByStudent(studentID string, limit, offset int) ([]*entity.FlightAuthorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM flight_authorizations WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, studentID, limit, offset)
}

// ListPending returns submitted authorizations awaiting a decision, oldest
// first so the queue is fair.
func (r *AuthorizationRepo) ListPending(limit, offset int) ([]*entity.FlightAuthorization, error) {
	query := `SELECT ` + authorizationColumns + ` FROM flight_authorizations WHERE status = 'pending' ORDER BY submitted_at LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Update writes the form fields and the decision state.
func (r *AuthorizationRepo) Update(a *entity.FlightAuthorization) error {
	query := `
		UPDATE flight_authorizations SET instructor_id = $2, status = $3,
			fuel_state = $4, oil_state = $5, runway_in_use = $6, weather = $7, exercises_planned = $8,
			signature = $9, reject_reason = $10, submitted_at = $11, decided_at = $12, decided_by = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, nullIfEmpty(a.InstructorID), a.Status,
		a.FuelState, a.OilState, a.RunwayInUse, a.Weather, a.ExercisesPlanned,
		a.Signature, a.RejectReason, a.SubmittedAt, a.DecidedAt, nullIfEmpty(a.DecidedBy), a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update authorization: %w", err)
	}
	return nil
}

func (r *AuthorizationRepo) list(query string, args ...any) ([]*entity.FlightAuthorization, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list authorizations: %w", err)
	}
	defer rows.Close()
	var list []*entity.FlightAuthorization
	for rows.Next() {
		a, err := scanAuthorization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan authorization: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAuthorization(row pgx.Row) (*entity.FlightAuthorization, error) {
	var a entity.FlightAuthorization
	var instructorID, decidedBy *string
	err := row.Scan(
		&a.ID, &a.BookingID, &a.StudentID, &instructorID, &a.Status,
		&a.FuelState, &a.OilState, &a.RunwayInUse, &a.Weather, &a.ExercisesPlanned, &a.Signature, &a.RejectReason,
		&a.SubmittedAt, &a.DecidedAt, &decidedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.InstructorID = emptyIfNull(instructorID)
	a.DecidedBy = emptyIfNull(decidedBy)
	return &a, nil
}
