package booking

import (
	"context"

	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// CheckInTxRunner runs a callback with booking, aircraft and invoice
// repositories bound to one transaction. Check-in must complete the booking,
// advance the aircraft meters and (optionally) create the draft invoice
// atomically.
type CheckInTxRunner interface {
	RunCheckIn(ctx context.Context, fn func(
		bookingRepo repository.BookingRepository,
		aircraftRepo repository.AircraftRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// SettingsReader is the minimal settings contract booking needs.
type SettingsReader interface {
	GetString(category, key, def string) string
	GetInt(category, key string, def int) int
}
