// Package flightauth owns the authorization status machine. Transitions are
// rejected here by an explicit table rather than left implicit in which
// buttons a UI happens to render.
package flightauth

import (
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// Actions on a flight authorization.
const (
	ActionSubmit  = "submit"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
)

// transitions maps action -> allowed source statuses -> resulting status.
var transitions = map[string]map[string]string{
	ActionSubmit: {
		entity.AuthorizationStatusDraft:    entity.AuthorizationStatusPending,
		entity.AuthorizationStatusRejected: entity.AuthorizationStatusPending,
	},
	ActionApprove: {
		entity.AuthorizationStatusPending: entity.AuthorizationStatusApproved,
	},
	ActionReject: {
		entity.AuthorizationStatusPending: entity.AuthorizationStatusRejected,
	},
	ActionCancel: {
		entity.AuthorizationStatusDraft:    entity.AuthorizationStatusCancelled,
		entity.AuthorizationStatusPending:  entity.AuthorizationStatusCancelled,
		entity.AuthorizationStatusRejected: entity.AuthorizationStatusCancelled,
	},
}

// Next returns the resulting status for an action from the given status.
// ok is false when the transition is not allowed.
func Next(from, action string) (to string, ok bool) {
	row, ok := transitions[action]
	if !ok {
		return "", false
	}
	to, ok = row[from]
	return to, ok
}

// CanEdit reports whether field edits are allowed in the given status. Only
// draft and rejected records are user-editable.
func CanEdit(status string) bool {
	return status == entity.AuthorizationStatusDraft || status == entity.AuthorizationStatusRejected
}

// IsTerminal reports statuses from which no action is valid.
func IsTerminal(status string) bool {
	return status == entity.AuthorizationStatusApproved || status == entity.AuthorizationStatusCancelled
}

// FieldErrors maps field name -> human-readable problem.
type FieldErrors map[string]string

// ValidateSubmit applies the strict submit schema: every pre-flight field and
// the signature must be populated. A non-empty result means the submit is
// refused and the record keeps its current status.
func ValidateSubmit(a *entity.FlightAuthorization) FieldErrors {
	errs := FieldErrors{}
	required := map[string]string{
		"fuel_state":        a.FuelState,
		"oil_state":         a.OilState,
		"runway_in_use":     a.RunwayInUse,
		"weather":           a.Weather,
		"exercises_planned": a.ExercisesPlanned,
		"signature":         a.Signature,
	}
	for field, value := range required {
		if value == "" {
			errs[field] = "required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateDraft applies the loose auto-save schema: only the linkage fields
// must be present, everything else may be incomplete.
func ValidateDraft(a *entity.FlightAuthorization) FieldErrors {
	errs := FieldErrors{}
	if a.BookingID == "" {
		errs["booking_id"] = "required"
	}
	if a.StudentID == "" {
		errs["student_id"] = "required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
