package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// ObservationUseCase aircraft observation tracking: report, acknowledge,
// resolve. Grounding observations block check-out until resolved.
type ObservationUseCase struct {
	repo         repository.ObservationRepository
	aircraftRepo repository.AircraftRepository
}

// NewObservationUseCase builds the use case.
func NewObservationUseCase(repo repository.ObservationRepository, aircraftRepo repository.AircraftRepository) *ObservationUseCase {
	return &ObservationUseCase{repo: repo, aircraftRepo: aircraftRepo}
}

// Report files a new observation against an aircraft.
func (uc *ObservationUseCase) Report(aircraftID, reportedBy string, in dto.CreateObservationRequest) (*dto.ObservationResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Severity {
	case entity.ObservationSeverityInfo, entity.ObservationSeverityCaution, entity.ObservationSeverityGrounding:
	default:
		return nil, domain.ErrInvalidInput
	}
	aircraft, err := uc.aircraftRepo.GetByID(aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	o := &entity.Observation{
		ID:          uuid.New().String(),
		AircraftID:  aircraftID,
		ReportedBy:  reportedBy,
		Description: in.Description,
		Severity:    in.Severity,
		Status:      entity.ObservationStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(o); err != nil {
		return nil, err
	}
	return toObservationResponse(o), nil
}

// ListByAircraft returns observations, optionally only unresolved ones.
func (uc *ObservationUseCase) ListByAircraft(aircraftID string, openOnly bool) ([]*dto.ObservationResponse, error) {
	list, err := uc.repo.ListByAircraft(aircraftID, openOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ObservationResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toObservationResponse(o))
	}
	return out, nil
}

// Acknowledge marks an open observation as seen.
func (uc *ObservationUseCase) Acknowledge(id string) (*dto.ObservationResponse, error) {
	o, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Status != entity.ObservationStatusOpen {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = entity.ObservationStatusAcknowledged
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(o); err != nil {
		return nil, err
	}
	return toObservationResponse(o), nil
}

// Resolve closes an open or acknowledged observation.
func (uc *ObservationUseCase) Resolve(id, resolvedBy string) (*dto.ObservationResponse, error) {
	o, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Status == entity.ObservationStatusResolved {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	o.Status = entity.ObservationStatusResolved
	o.ResolvedBy = resolvedBy
	o.ResolvedAt = &now
	o.UpdatedAt = now
	if err := uc.repo.Update(o); err != nil {
		return nil, err
	}
	return toObservationResponse(o), nil
}

func toObservationResponse(o *entity.Observation) *dto.ObservationResponse {
	return &dto.ObservationResponse{
		ID:          o.ID,
		AircraftID:  o.AircraftID,
		ReportedBy:  o.ReportedBy,
		Description: o.Description,
		Severity:    o.Severity,
		Status:      o.Status,
		ResolvedBy:  o.ResolvedBy,
		ResolvedAt:  o.ResolvedAt,
		CreatedAt:   o.CreatedAt,
	}
}
