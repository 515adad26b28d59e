package repository

import (
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// BookingRepository persistence port for bookings, including the override
// audit fields and meter readings.
type BookingRepository interface {
	Create(b *entity.Booking) error
	GetByID(id string) (*entity.Booking, error)
	ListByMember(memberID string, limit, offset int) ([]*entity.Booking, error)
	ListBetween(from, to time.Time) ([]*entity.Booking, error)
	Update(b *entity.Booking) error
}
