package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAircraftRequest body for POST /api/aircraft.
type CreateAircraftRequest struct {
	Registration          string          `json:"registration"`
	Model                 string          `json:"model"`
	HourlyRate            decimal.Decimal `json:"hourly_rate"`
	RequiresAuthorization bool            `json:"requires_authorization"`
}

// AircraftResponse aircraft in responses.
type AircraftResponse struct {
	ID                    string          `json:"id"`
	Registration          string          `json:"registration"`
	Model                 string          `json:"model"`
	Status                string          `json:"status"`
	TachTime              decimal.Decimal `json:"tach_time"`
	HobbsTime             decimal.Decimal `json:"hobbs_time"`
	HourlyRate            decimal.Decimal `json:"hourly_rate"`
	RequiresAuthorization bool            `json:"requires_authorization"`
}

// CreateObservationRequest body for POST /api/aircraft/:id/observations.
type CreateObservationRequest struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ObservationResponse observation in responses.
type ObservationResponse struct {
	ID          string     `json:"id"`
	AircraftID  string     `json:"aircraft_id"`
	ReportedBy  string     `json:"reported_by"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
