package flightauth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/flightauth"
)

func TestNext_TransitionMatrix(t *testing.T) {
	cases := []struct {
		from, action string
		want         string
		ok           bool
	}{
		{entity.AuthorizationStatusDraft, flightauth.ActionSubmit, entity.AuthorizationStatusPending, true},
		{entity.AuthorizationStatusRejected, flightauth.ActionSubmit, entity.AuthorizationStatusPending, true},
		{entity.AuthorizationStatusPending, flightauth.ActionApprove, entity.AuthorizationStatusApproved, true},
		{entity.AuthorizationStatusPending, flightauth.ActionReject, entity.AuthorizationStatusRejected, true},
		{entity.AuthorizationStatusDraft, flightauth.ActionCancel, entity.AuthorizationStatusCancelled, true},
		{entity.AuthorizationStatusPending, flightauth.ActionCancel, entity.AuthorizationStatusCancelled, true},
		{entity.AuthorizationStatusRejected, flightauth.ActionCancel, entity.AuthorizationStatusCancelled, true},

		// refused
		{entity.AuthorizationStatusPending, flightauth.ActionSubmit, "", false},
		{entity.AuthorizationStatusDraft, flightauth.ActionApprove, "", false},
		{entity.AuthorizationStatusApproved, flightauth.ActionReject, "", false},
		{entity.AuthorizationStatusApproved, flightauth.ActionCancel, "", false},
		{entity.AuthorizationStatusCancelled, flightauth.ActionSubmit, "", false},
		{entity.AuthorizationStatusCancelled, flightauth.ActionCancel, "", false},
		{entity.AuthorizationStatusDraft, "unknown", "", false},
	}
	for _, tc := range cases {
		got, ok := flightauth.Next(tc.from, tc.action)
		assert.Equal(t, tc.ok, ok, "%s --%s-->", tc.from, tc.action)
		assert.Equal(t, tc.want, got, "%s --%s-->", tc.from, tc.action)
	}
}

func TestCanEditAndTerminal(t *testing.T) {
	assert.True(t, flightauth.CanEdit(entity.AuthorizationStatusDraft))
	assert.True(t, flightauth.CanEdit(entity.AuthorizationStatusRejected))
	assert.False(t, flightauth.CanEdit(entity.AuthorizationStatusPending))
	assert.False(t, flightauth.CanEdit(entity.AuthorizationStatusApproved))

	assert.True(t, flightauth.IsTerminal(entity.AuthorizationStatusApproved))
	assert.True(t, flightauth.IsTerminal(entity.AuthorizationStatusCancelled))
	assert.False(t, flightauth.IsTerminal(entity.AuthorizationStatusRejected), "rejected can be resubmitted")
}

func fullAuthorization() *entity.FlightAuthorization {
	return &entity.FlightAuthorization{
		BookingID:        "b-1",
		StudentID:        "s-1",
		Status:           entity.AuthorizationStatusDraft,
		FuelState:        "full",
		OilState:         "6 qt",
		RunwayInUse:      "21L",
		Weather:          "CAVOK",
		ExercisesPlanned: "circuits",
		Signature:        "A. Student",
	}
}

func TestValidateSubmit_Complete(t *testing.T) {
	assert.Nil(t, flightauth.ValidateSubmit(fullAuthorization()))
}

func TestValidateSubmit_MissingRunwayKeepsFieldError(t *testing.T) {
	a := fullAuthorization()
	a.RunwayInUse = ""

	errs := flightauth.ValidateSubmit(a)
	assert.Len(t, errs, 1)
	assert.Equal(t, "required", errs["runway_in_use"])
	// Status is untouched by validation; the use case only moves it on success.
	assert.Equal(t, entity.AuthorizationStatusDraft, a.Status)
}

func TestValidateSubmit_MissingSignature(t *testing.T) {
	a := fullAuthorization()
	a.Signature = ""
	errs := flightauth.ValidateSubmit(a)
	assert.Equal(t, "required", errs["signature"])
}

func TestValidateDraft_LooseSchema(t *testing.T) {
	a := &entity.FlightAuthorization{BookingID: "b-1", StudentID: "s-1"}
	assert.Nil(t, flightauth.ValidateDraft(a), "incomplete pre-flight fields are fine for drafts")

	a = &entity.FlightAuthorization{StudentID: "s-1"}
	errs := flightauth.ValidateDraft(a)
	assert.Equal(t, "required", errs["booking_id"])
}
