package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingReportRow one booking in the period report.
type BookingReportRow struct {
	BookingID    string
	Aircraft     string
	MemberName   string
	FlightType   string
	Status       string
	StartTime    time.Time
	EndTime      time.Time
	FlightTime   decimal.Decimal
}

// FlightTimeReportRow aggregated hours per aircraft and member.
type FlightTimeReportRow struct {
	Aircraft   string
	MemberName string
	Flights    int
	TotalHours decimal.Decimal
}

// InvoiceSummaryRow invoice counts and amounts grouped by status.
type InvoiceSummaryRow struct {
	Status      string
	Count       int
	TotalAmount decimal.Decimal
}

// ReportRepository read-only aggregation queries for operational reports.
type ReportRepository interface {
	BookingReport(from, to time.Time) ([]BookingReportRow, error)
	FlightTimeReport(from, to time.Time) ([]FlightTimeReportRow, error)
	InvoiceSummary(from, to time.Time) ([]InvoiceSummaryRow, error)
}
