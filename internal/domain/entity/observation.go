package entity

import "time"

// Observation states and severities.
const (
	ObservationStatusOpen         = "open"
	ObservationStatusAcknowledged = "acknowledged"
	ObservationStatusResolved     = "resolved"

	ObservationSeverityInfo     = "info"
	ObservationSeverityCaution  = "caution"
	ObservationSeverityGrounding = "grounding"
)

// Observation is a defect or remark reported against an aircraft.
type Observation struct {
	ID          string
	AircraftID  string
	ReportedBy  string
	Description string
	Severity    string
	Status      string
	ResolvedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
