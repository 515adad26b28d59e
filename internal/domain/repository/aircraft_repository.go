package repository

import "github.com/flightdesk/flightdesk-api/internal/domain/entity"

// AircraftRepository persistence port for fleet aircraft.
type AircraftRepository interface {
	Create(a *entity.Aircraft) error
	GetByID(id string) (*entity.Aircraft, error)
	List(limit, offset int) ([]*entity.Aircraft, error)
	Update(a *entity.Aircraft) error
}

// ObservationRepository persistence port for aircraft observations.
type ObservationRepository interface {
	Create(o *entity.Observation) error
	GetByID(id string) (*entity.Observation, error)
	ListByAircraft(aircraftID string, openOnly bool) ([]*entity.Observation, error)
	Update(o *entity.Observation) error
}
