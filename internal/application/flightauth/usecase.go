package flightauth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/ports"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	domainauth "github.com/flightdesk/flightdesk-api/internal/domain/flightauth"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// ValidationError carries per-field submit errors back to the handler, which
// renders them as a 400 with a fields map. The stored status is untouched.
type ValidationError struct {
	Fields domainauth.FieldErrors
}

func (e *ValidationError) Error() string { return "validation failed" }

// AuthorizationUseCase drives the authorization workflow: draft save, submit,
// approve, reject, cancel.
type AuthorizationUseCase struct {
	authRepo    repository.AuthorizationRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	notifier    ports.Notifier
}

// NewAuthorizationUseCase builds the use case. notifier may be nil.
func NewAuthorizationUseCase(
	authRepo repository.AuthorizationRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	notifier ports.Notifier,
) *AuthorizationUseCase {
	return &AuthorizationUseCase{
		authRepo:    authRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Create opens a draft authorization for a booking.
func (uc *AuthorizationUseCase) Create(ctx context.Context, studentID string, in dto.AuthorizationDraftRequest) (*dto.AuthorizationResponse, error) {
	booking, err := uc.bookingRepo.GetByID(in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if booking.MemberID != studentID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	a := &entity.FlightAuthorization{
		ID:        uuid.New().String(),
		BookingID: in.BookingID,
		StudentID: studentID,
		Status:    entity.AuthorizationStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDraftFields(a, in)
	if errs := domainauth.ValidateDraft(a); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	if err := uc.authRepo.Create(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// SaveDraft persists field edits under the loose draft schema. Only
// draft/rejected records are editable; editing a rejected record keeps its
// status (resubmission is a separate action).
func (uc *AuthorizationUseCase) SaveDraft(ctx context.Context, id, studentID string, in dto.AuthorizationDraftRequest) (*dto.AuthorizationResponse, error) {
	a, err := uc.owned(id, studentID)
	if err != nil {
		return nil, err
	}
	if !domainauth.CanEdit(a.Status) {
		return nil, domain.ErrConflict
	}
	applyDraftFields(a, in)
	if errs := domainauth.ValidateDraft(a); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	a.UpdatedAt = time.Now()
	if err := uc.authRepo.Update(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Submit runs the strict schema and moves draft/rejected to pending. On a
// validation failure the stored status stays as it was and the field errors
// surface to the caller.
func (uc *AuthorizationUseCase) Submit(ctx context.Context, id, studentID string) (*dto.AuthorizationResponse, error) {
	a, err := uc.owned(id, studentID)
	if err != nil {
		return nil, err
	}
	next, ok := domainauth.Next(a.Status, domainauth.ActionSubmit)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	if errs := domainauth.ValidateSubmit(a); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	now := time.Now()
	a.Status = next
	a.SubmittedAt = &now
	a.RejectReason = ""
	a.UpdatedAt = now
	if err := uc.authRepo.Update(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Approve is an instructor action on a pending authorization.
func (uc *AuthorizationUseCase) Approve(ctx context.Context, id, instructorID string) (*dto.AuthorizationResponse, error) {
	return uc.decide(ctx, id, instructorID, domainauth.ActionApprove, "")
}

// Reject is an instructor action; a non-empty reason is required and is
// persisted for the student.
func (uc *AuthorizationUseCase) Reject(ctx context.Context, id, instructorID, reason string) (*dto.AuthorizationResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.decide(ctx, id, instructorID, domainauth.ActionReject, reason)
}

// Cancel voids any non-terminal authorization.
func (uc *AuthorizationUseCase) Cancel(ctx context.Context, id string) (*dto.AuthorizationResponse, error) {
	a, err := uc.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	next, ok := domainauth.Next(a.Status, domainauth.ActionCancel)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	a.Status = next
	a.UpdatedAt = time.Now()
	if err := uc.authRepo.Update(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Get returns one authorization.
func (uc *AuthorizationUseCase) Get(ctx context.Context, id string) (*dto.AuthorizationResponse, error) {
	a, err := uc.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(a), nil
}

// ListPending returns pending authorizations for the instructor queue.
func (uc *AuthorizationUseCase) ListPending(ctx context.Context, page dto.PageRequest) ([]*dto.AuthorizationResponse, error) {
	page.DefaultPage()
	list, err := uc.authRepo.ListPending(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListByStudent returns a student's authorizations.
func (uc *AuthorizationUseCase) ListByStudent(ctx context.Context, studentID string, page dto.PageRequest) ([]*dto.AuthorizationResponse, error) {
	page.DefaultPage()
	list, err := uc.authRepo.ListByStudent(studentID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

func (uc *AuthorizationUseCase) decide(ctx context.Context, id, instructorID, action, reason string) (*dto.AuthorizationResponse, error) {
	a, err := uc.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	next, ok := domainauth.Next(a.Status, action)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	a.Status = next
	a.InstructorID = instructorID
	a.DecidedAt = &now
	a.DecidedBy = instructorID
	a.RejectReason = reason
	a.UpdatedAt = now
	if err := uc.authRepo.Update(a); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		if student, err := uc.userRepo.GetByID(a.StudentID); err == nil && student != nil {
			if err := uc.notifier.AuthorizationDecided(ctx, student.Email, student.Name, a); err != nil {
				log.Warn().Err(err).Str("authorization_id", a.ID).Msg("authorization decision email failed")
			}
		}
	}
	return toResponse(a), nil
}

func (uc *AuthorizationUseCase) owned(id, studentID string) (*entity.FlightAuthorization, error) {
	a, err := uc.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.StudentID != studentID {
		return nil, domain.ErrForbidden
	}
	return a, nil
}

func applyDraftFields(a *entity.FlightAuthorization, in dto.AuthorizationDraftRequest) {
	a.FuelState = in.FuelState
	a.OilState = in.OilState
	a.RunwayInUse = in.RunwayInUse
	a.Weather = in.Weather
	a.ExercisesPlanned = in.ExercisesPlanned
	a.Signature = in.Signature
}

func toResponse(a *entity.FlightAuthorization) *dto.AuthorizationResponse {
	return &dto.AuthorizationResponse{
		ID:               a.ID,
		BookingID:        a.BookingID,
		StudentID:        a.StudentID,
		InstructorID:     a.InstructorID,
		Status:           a.Status,
		FuelState:        a.FuelState,
		OilState:         a.OilState,
		RunwayInUse:      a.RunwayInUse,
		Weather:          a.Weather,
		ExercisesPlanned: a.ExercisesPlanned,
		Signature:        a.Signature,
		RejectReason:     a.RejectReason,
		SubmittedAt:      a.SubmittedAt,
		DecidedAt:        a.DecidedAt,
		DecidedBy:        a.DecidedBy,
	}
}

func toResponses(list []*entity.FlightAuthorization) []*dto.AuthorizationResponse {
	out := make([]*dto.AuthorizationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toResponse(a))
	}
	return out
}
