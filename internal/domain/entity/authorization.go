package entity

import "time"

// Flight authorization states. approved and cancelled are terminal; rejected
// can be resubmitted.
const (
	AuthorizationStatusDraft     = "draft"
	AuthorizationStatusPending   = "pending"
	AuthorizationStatusApproved  = "approved"
	AuthorizationStatusRejected  = "rejected"
	AuthorizationStatusCancelled = "cancelled"
)

// FlightAuthorization is the pre-flight sign-off a student submits for a solo
// flight and an instructor approves or rejects.
type FlightAuthorization struct {
	ID               string
	BookingID        string
	StudentID        string
	InstructorID     string
	Status           string
	FuelState        string
	OilState         string
	RunwayInUse      string
	Weather          string
	ExercisesPlanned string
	Signature        string // student's typed signature, required at submit
	RejectReason     string // required on reject, shown to the student
	SubmittedAt      *time.Time
	DecidedAt        *time.Time
	DecidedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
