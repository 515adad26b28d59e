package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/usecase"
)

// AircraftHandler handles the fleet and its observations.
type AircraftHandler struct {
	uc  *usecase.AircraftUseCase
	obs *usecase.ObservationUseCase
}

// NewAircraftHandler builds the handler.
func NewAircraftHandler(uc *usecase.AircraftUseCase, obs *usecase.ObservationUseCase) *AircraftHandler {
	return &AircraftHandler{uc: uc, obs: obs}
}

// Create adds a fleet aircraft.
// POST /api/aircraft
func (h *AircraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAircraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns one aircraft.
// GET /api/aircraft/:id
func (h *AircraftHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// List returns the fleet.
// GET /api/aircraft
func (h *AircraftHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SetStatus moves the aircraft between active, maintenance and retired.
// PUT /api/aircraft/:id/status
func (h *AircraftHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ReportObservation files a defect or remark against the aircraft.
// POST /api/aircraft/:id/observations
func (h *AircraftHandler) ReportObservation(c *fiber.Ctx) error {
	var in dto.CreateObservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.obs.Report(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListObservations returns the aircraft's observations. ?open=true filters
// to unresolved ones.
// GET /api/aircraft/:id/observations
func (h *AircraftHandler) ListObservations(c *fiber.Ctx) error {
	openOnly := c.QueryBool("open")
	resp, err := h.obs.ListByAircraft(c.Params("id"), openOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// AcknowledgeObservation marks an open observation as seen.
// POST /api/observations/:id/acknowledge
func (h *AircraftHandler) AcknowledgeObservation(c *fiber.Ctx) error {
	resp, err := h.obs.Acknowledge(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ResolveObservation closes an observation.
// POST /api/observations/:id/resolve
func (h *AircraftHandler) ResolveObservation(c *fiber.Ctx) error {
	resp, err := h.obs.Resolve(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
