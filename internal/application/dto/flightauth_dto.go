package dto

import "time"

// AuthorizationDraftRequest loose-schema body for create and auto-save.
// Incomplete pre-flight fields are tolerated while the record is a draft.
type AuthorizationDraftRequest struct {
	BookingID        string `json:"booking_id"`
	FuelState        string `json:"fuel_state,omitempty"`
	OilState         string `json:"oil_state,omitempty"`
	RunwayInUse      string `json:"runway_in_use,omitempty"`
	Weather          string `json:"weather,omitempty"`
	ExercisesPlanned string `json:"exercises_planned,omitempty"`
	Signature        string `json:"signature,omitempty"`
}

// RejectRequest body for POST /api/authorizations/:id/reject. Reason is
// required and is shown to the student.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// AuthorizationResponse authorization in responses.
type AuthorizationResponse struct {
	ID               string     `json:"id"`
	BookingID        string     `json:"booking_id"`
	StudentID        string     `json:"student_id"`
	InstructorID     string     `json:"instructor_id,omitempty"`
	Status           string     `json:"status"`
	FuelState        string     `json:"fuel_state,omitempty"`
	OilState         string     `json:"oil_state,omitempty"`
	RunwayInUse      string     `json:"runway_in_use,omitempty"`
	Weather          string     `json:"weather,omitempty"`
	ExercisesPlanned string     `json:"exercises_planned,omitempty"`
	Signature        string     `json:"signature,omitempty"`
	RejectReason     string     `json:"reject_reason,omitempty"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	DecidedBy        string     `json:"decided_by,omitempty"`
}
