package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

// BookingRepo implements BookingRepository over PostgreSQL.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository builds the adapter. Pass a pool or a tx.
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

const bookingColumns = `id, aircraft_id, member_id, instructor_id, start_time, end_time, flight_type, status, remarks,
	tach_start, tach_end, hobbs_start, hobbs_end, checked_out_at, checked_in_at,
	override_by, override_at, override_reason, created_at, updated_at`

// Create persists a booking.
func (r *BookingRepo) Create(b *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	overrideBy, overrideAt, overrideReason := overrideFields(b.Override)
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.AircraftID, b.MemberID, nullIfEmpty(b.InstructorID), b.StartTime, b.EndTime,
		b.FlightType, b.Status, b.Remarks,
		b.TachStart, b.TachEnd, b.HobbsStart, b.HobbsEnd, b.CheckedOutAt, b.CheckedInAt,
		overrideBy, overrideAt, overrideReason, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID fetches a booking by ID, (nil, nil) when missing.
func (r *BookingRepo) GetByID(id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return b, nil
}

// ListByMember returns a member's bookings, newest first.
func (r *BookingRepo) ListByMember(memberID string, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE member_id = $1 ORDER BY start_time DESC LIMIT $2 OFFSET $3`
	return r.list(query, memberID, limit, offset)
}

// ListBetween returns bookings whose start time falls in [from, to].
func (r *BookingRepo) ListBetween(from, to time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE start_time BETWEEN $1 AND $2 ORDER BY start_time`
	return r.list(query, from, to)
}

// Update writes status, meters, check-out/in timestamps and the override
// audit fields.
func (r *BookingRepo) Update(b *entity.Booking) error {
	query := `
		UPDATE bookings SET instructor_id = $2, start_time = $3, end_time = $4, flight_type = $5, status = $6, remarks = $7,
			tach_start = $8, tach_end = $9, hobbs_start = $10, hobbs_end = $11,
			checked_out_at = $12, checked_in_at = $13,
			override_by = $14, override_at = $15, override_reason = $16, updated_at = $17
		WHERE id = $1`
	overrideBy, overrideAt, overrideReason := overrideFields(b.Override)
	_, err := r.q.Exec(context.Background(), query,
		b.ID, nullIfEmpty(b.InstructorID), b.StartTime, b.EndTime, b.FlightType, b.Status, b.Remarks,
		b.TachStart, b.TachEnd, b.HobbsStart, b.HobbsEnd, b.CheckedOutAt, b.CheckedInAt,
		overrideBy, overrideAt, overrideReason, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) list(query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var instructorID, overrideBy, overrideReason *string
	var overrideAt *time.Time
	err := row.Scan(
		&b.ID, &b.AircraftID, &b.MemberID, &instructorID, &b.StartTime, &b.EndTime,
		&b.FlightType, &b.Status, &b.Remarks,
		&b.TachStart, &b.TachEnd, &b.HobbsStart, &b.HobbsEnd, &b.CheckedOutAt, &b.CheckedInAt,
		&overrideBy, &overrideAt, &overrideReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.InstructorID = emptyIfNull(instructorID)
	if overrideBy != nil && overrideAt != nil {
		b.Override = &entity.AuthorizationOverride{
			By:     *overrideBy,
			At:     *overrideAt,
			Reason: emptyIfNull(overrideReason),
		}
	}
	return &b, nil
}

func overrideFields(o *entity.AuthorizationOverride) (by *string, at *time.Time, reason *string) {
	if o == nil {
		return nil, nil, nil
	}
	return &o.By, &o.At, nullIfEmpty(o.Reason)
}
