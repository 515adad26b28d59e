package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aircraft states.
const (
	AircraftStatusActive      = "active"
	AircraftStatusMaintenance = "maintenance"
	AircraftStatusRetired     = "retired"
)

// Aircraft is a fleet aircraft available for booking.
type Aircraft struct {
	ID                    string
	Registration          string // e.g. ZK-ABC
	Model                 string
	Status                string
	TachTime              decimal.Decimal
	HobbsTime             decimal.Decimal
	HourlyRate            decimal.Decimal // tax-exclusive hire rate
	RequiresAuthorization bool            // solo flights need an approved authorization
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
