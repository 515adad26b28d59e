package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest body for POST /api/bookings.
type CreateBookingRequest struct {
	AircraftID   string    `json:"aircraft_id"`
	MemberID     string    `json:"member_id"`
	InstructorID string    `json:"instructor_id,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	FlightType   string    `json:"flight_type"`
	Remarks      string    `json:"remarks,omitempty"`
}

// CheckOutRequest body for POST /api/bookings/:id/checkout.
type CheckOutRequest struct {
	TachStart  decimal.Decimal `json:"tach_start"`
	HobbsStart decimal.Decimal `json:"hobbs_start"`
}

// CheckInRequest body for POST /api/bookings/:id/checkin. GenerateInvoice
// asks for a draft invoice with the flight-time lines.
type CheckInRequest struct {
	TachEnd         decimal.Decimal `json:"tach_end"`
	HobbsEnd        decimal.Decimal `json:"hobbs_end"`
	GenerateInvoice bool            `json:"generate_invoice"`
	InstructorRate  decimal.Decimal `json:"instructor_rate,omitempty"` // per hour, dual flights
}

// OverrideRequest body for POST /api/bookings/:id/override.
type OverrideRequest struct {
	Reason string `json:"reason"`
}

// OverrideResponse audit fields of a recorded override.
type OverrideResponse struct {
	By     string    `json:"by"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason"`
}

// BookingResponse booking with meters and override audit.
type BookingResponse struct {
	ID           string            `json:"id"`
	AircraftID   string            `json:"aircraft_id"`
	MemberID     string            `json:"member_id"`
	InstructorID string            `json:"instructor_id,omitempty"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	FlightType   string            `json:"flight_type"`
	Status       string            `json:"status"`
	Remarks      string            `json:"remarks,omitempty"`
	TachStart    decimal.Decimal   `json:"tach_start"`
	TachEnd      decimal.Decimal   `json:"tach_end"`
	HobbsStart   decimal.Decimal   `json:"hobbs_start"`
	HobbsEnd     decimal.Decimal   `json:"hobbs_end"`
	FlightTime   decimal.Decimal   `json:"flight_time"`
	CheckedOutAt *time.Time        `json:"checked_out_at,omitempty"`
	CheckedInAt  *time.Time        `json:"checked_in_at,omitempty"`
	Override     *OverrideResponse `json:"authorization_override,omitempty"`
	InvoiceID    string            `json:"invoice_id,omitempty"` // set when check-in generated one
}
