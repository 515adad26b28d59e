package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// AircraftUseCase fleet CRUD. Meter times advance only through check-in.
type AircraftUseCase struct {
	repo repository.AircraftRepository
}

// NewAircraftUseCase builds the use case.
func NewAircraftUseCase(repo repository.AircraftRepository) *AircraftUseCase {
	return &AircraftUseCase{repo: repo}
}

// Create registers an aircraft. Meters start at zero.
func (uc *AircraftUseCase) Create(in dto.CreateAircraftRequest) (*dto.AircraftResponse, error) {
	if in.Registration == "" || in.Model == "" || in.HourlyRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Aircraft{
		ID:                    uuid.New().String(),
		Registration:          in.Registration,
		Model:                 in.Model,
		Status:                entity.AircraftStatusActive,
		TachTime:              decimal.Zero,
		HobbsTime:             decimal.Zero,
		HourlyRate:            in.HourlyRate,
		RequiresAuthorization: in.RequiresAuthorization,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(a); err != nil {
		return nil, err
	}
	return toAircraftResponse(a), nil
}

// GetByID returns one aircraft.
func (uc *AircraftUseCase) GetByID(id string) (*dto.AircraftResponse, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAircraftResponse(a), nil
}

// List returns the fleet.
func (uc *AircraftUseCase) List(page dto.PageRequest) ([]*dto.AircraftResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AircraftResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAircraftResponse(a))
	}
	return out, nil
}

// SetStatus moves an aircraft between active/maintenance/retired.
func (uc *AircraftUseCase) SetStatus(id, status string) (*dto.AircraftResponse, error) {
	switch status {
	case entity.AircraftStatusActive, entity.AircraftStatusMaintenance, entity.AircraftStatusRetired:
	default:
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(a); err != nil {
		return nil, err
	}
	return toAircraftResponse(a), nil
}

func toAircraftResponse(a *entity.Aircraft) *dto.AircraftResponse {
	return &dto.AircraftResponse{
		ID:                    a.ID,
		Registration:          a.Registration,
		Model:                 a.Model,
		Status:                a.Status,
		TachTime:              a.TachTime,
		HobbsTime:             a.HobbsTime,
		HourlyRate:            a.HourlyRate,
		RequiresAuthorization: a.RequiresAuthorization,
	}
}
