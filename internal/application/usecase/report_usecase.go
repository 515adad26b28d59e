package usecase

import (
	"strconv"
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
	"github.com/flightdesk/flightdesk-api/internal/infrastructure/export"
)

// ReportUseCase operational reports over a period, shaped for JSON responses
// and for CSV/XLSX download.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase builds the use case.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Bookings returns the booking rows for the period.
func (uc *ReportUseCase) Bookings(from, to time.Time) ([]repository.BookingReportRow, error) {
	return uc.repo.BookingReport(from, to)
}

// BookingsTable shapes the booking report for export.
func (uc *ReportUseCase) BookingsTable(from, to time.Time) (export.Table, error) {
	rows, err := uc.repo.BookingReport(from, to)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Name:    "bookings",
		Headers: []string{"booking_id", "aircraft", "member", "flight_type", "status", "start_time", "end_time", "flight_time"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.BookingID, r.Aircraft, r.MemberName, r.FlightType, r.Status,
			r.StartTime.Format(time.RFC3339), r.EndTime.Format(time.RFC3339),
			r.FlightTime.StringFixed(1),
		})
	}
	return table, nil
}

// FlightTime returns aggregated hours per aircraft and member.
func (uc *ReportUseCase) FlightTime(from, to time.Time) ([]repository.FlightTimeReportRow, error) {
	return uc.repo.FlightTimeReport(from, to)
}

// FlightTimeTable shapes the flight-time report for export.
func (uc *ReportUseCase) FlightTimeTable(from, to time.Time) (export.Table, error) {
	rows, err := uc.repo.FlightTimeReport(from, to)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Name:    "flight_time",
		Headers: []string{"aircraft", "member", "flights", "total_hours"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Aircraft, r.MemberName, strconv.Itoa(r.Flights), r.TotalHours.StringFixed(1),
		})
	}
	return table, nil
}

// InvoiceSummary returns invoice counts and amounts grouped by status.
func (uc *ReportUseCase) InvoiceSummary(from, to time.Time) ([]repository.InvoiceSummaryRow, error) {
	return uc.repo.InvoiceSummary(from, to)
}

// InvoiceSummaryTable shapes the invoice summary for export.
func (uc *ReportUseCase) InvoiceSummaryTable(from, to time.Time) (export.Table, error) {
	rows, err := uc.repo.InvoiceSummary(from, to)
	if err != nil {
		return export.Table{}, err
	}
	table := export.Table{
		Name:    "invoice_summary",
		Headers: []string{"status", "count", "total_amount"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Status, strconv.Itoa(r.Count), r.TotalAmount.StringFixed(2)})
	}
	return table, nil
}
