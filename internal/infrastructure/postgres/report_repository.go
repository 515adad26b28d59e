package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo read-only aggregation queries for operational reports.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter. Pass a pool or a tx.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// BookingReport returns one row per booking started in the period, joined
// with aircraft registration and member name. Flight time is the hobbs delta,
// zero until check-in.
func (r *ReportRepo) BookingReport(from, to time.Time) ([]repository.BookingReportRow, error) {
	query := `
		SELECT b.id, a.registration, u.name, b.flight_type, b.status, b.start_time, b.end_time,
			CASE WHEN b.checked_in_at IS NULL THEN 0 ELSE b.hobbs_end - b.hobbs_start END AS flight_time
		FROM bookings b
		JOIN aircraft a ON a.id = b.aircraft_id
		JOIN users u ON u.id = b.member_id
		WHERE b.start_time BETWEEN $1 AND $2
		ORDER BY b.start_time`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("booking report: %w", err)
	}
	defer rows.Close()
	var list []repository.BookingReportRow
	for rows.Next() {
		var row repository.BookingReportRow
		if err := rows.Scan(&row.BookingID, &row.Aircraft, &row.MemberName, &row.FlightType, &row.Status, &row.StartTime, &row.EndTime, &row.FlightTime); err != nil {
			return nil, fmt.Errorf("scan booking report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// FlightTimeReport aggregates completed flight hours per aircraft and member.
func (r *ReportRepo) FlightTimeReport(from, to time.Time) ([]repository.FlightTimeReportRow, error) {
	query := `
		SELECT a.registration, u.name, COUNT(*), COALESCE(SUM(b.hobbs_end - b.hobbs_start), 0)
		FROM bookings b
		JOIN aircraft a ON a.id = b.aircraft_id
		JOIN users u ON u.id = b.member_id
		WHERE b.status = 'completed' AND b.start_time BETWEEN $1 AND $2
		GROUP BY a.registration, u.name
		ORDER BY a.registration, u.name`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("flight time report: %w", err)
	}
	defer rows.Close()
	var list []repository.FlightTimeReportRow
	for rows.Next() {
		var row repository.FlightTimeReportRow
		if err := rows.Scan(&row.Aircraft, &row.MemberName, &row.Flights, &row.TotalHours); err != nil {
			return nil, fmt.Errorf("scan flight time row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// InvoiceSummary groups invoices issued in the period by status.
func (r *ReportRepo) InvoiceSummary(from, to time.Time) ([]repository.InvoiceSummaryRow, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE issue_date BETWEEN $1 AND $2
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoice summary: %w", err)
	}
	defer rows.Close()
	var list []repository.InvoiceSummaryRow
	for rows.Next() {
		var row repository.InvoiceSummaryRow
		if err := rows.Scan(&row.Status, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan invoice summary row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
