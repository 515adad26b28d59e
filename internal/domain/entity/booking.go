package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking states.
const (
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Flight types.
const (
	FlightTypeDual    = "dual"    // with instructor
	FlightTypeSolo    = "solo"    // student alone; may need an approved authorization
	FlightTypePrivate = "private" // licensed member hire
)

// AuthorizationOverride is the audit record written when check-out proceeds
// without an approved authorization. The override write and the check-out
// write are two sequential updates with no atomicity guarantee; check-out is
// retryable so a gap between them is recoverable.
type AuthorizationOverride struct {
	By     string
	At     time.Time
	Reason string
}

// Booking reserves an aircraft (and optionally an instructor) for a member.
type Booking struct {
	ID           string
	AircraftID   string
	MemberID     string
	InstructorID string // empty for solo/private
	StartTime    time.Time
	EndTime      time.Time
	FlightType   string
	Status       string
	Remarks      string

	// Check-out / check-in meter readings.
	TachStart    decimal.Decimal
	TachEnd      decimal.Decimal
	HobbsStart   decimal.Decimal
	HobbsEnd     decimal.Decimal
	CheckedOutAt *time.Time
	CheckedInAt  *time.Time

	Override *AuthorizationOverride

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FlightTime returns the hobbs delta for a completed flight, zero before
// check-in.
func (b *Booking) FlightTime() decimal.Decimal {
	if b.CheckedInAt == nil {
		return decimal.Zero
	}
	return b.HobbsEnd.Sub(b.HobbsStart)
}

// NeedsAuthorization reports whether the booking is a solo flight that must
// carry an approved authorization (or an override) before check-out.
func (b *Booking) NeedsAuthorization(aircraftRequires bool) bool {
	return b.FlightType == FlightTypeSolo && aircraftRequires
}
