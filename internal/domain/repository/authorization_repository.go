package repository

import "github.com/flightdesk/flightdesk-api/internal/domain/entity"

// AuthorizationRepository persistence port for flight authorizations.
type AuthorizationRepository interface {
	Create(a *entity.FlightAuthorization) error
	GetByID(id string) (*entity.FlightAuthorization, error)
	// GetApprovedByBooking returns the approved authorization for a booking,
	// nil when none exists. Used by the check-out gate.
	GetApprovedByBooking(bookingID string) (*entity.FlightAuthorization, error)
	ListByStudent(studentID string, limit, offset int) ([]*entity.FlightAuthorization, error)
	ListPending(limit, offset int) ([]*entity.FlightAuthorization, error)
	Update(a *entity.FlightAuthorization) error
}
