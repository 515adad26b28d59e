package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/usecase"
)

// SettingsHandler exposes the configuration rows to the admin screen.
type SettingsHandler struct {
	svc *usecase.SettingsService
}

// NewSettingsHandler builds the handler.
func NewSettingsHandler(svc *usecase.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// ListByCategory returns the rows of one category.
// GET /api/settings/:category
func (h *SettingsHandler) ListByCategory(c *fiber.Ctx) error {
	resp, err := h.svc.ListByCategory(c.Params("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Upsert writes one setting row.
// PUT /api/settings
func (h *SettingsHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.svc.Upsert(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
