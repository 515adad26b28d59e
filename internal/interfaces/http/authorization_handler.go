package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/flightauth"
)

// AuthorizationHandler handles the flight authorization workflow.
type AuthorizationHandler struct {
	uc     *flightauth.AuthorizationUseCase
	drafts *flightauth.DraftSaver
}

// NewAuthorizationHandler builds the handler. drafts backs the auto-save
// endpoint.
func NewAuthorizationHandler(uc *flightauth.AuthorizationUseCase, drafts *flightauth.DraftSaver) *AuthorizationHandler {
	return &AuthorizationHandler{uc: uc, drafts: drafts}
}

// Create opens a draft authorization for a booking.
// POST /api/authorizations
func (h *AuthorizationHandler) Create(c *fiber.Ctx) error {
	var in dto.AuthorizationDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns one authorization.
// GET /api/authorizations/:id
func (h *AuthorizationHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SaveDraft writes the form fields immediately. Loose schema: incomplete
// fields are accepted while the record is editable.
// PUT /api/authorizations/:id/draft
func (h *AuthorizationHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.AuthorizationDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.SaveDraft(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// AutoSave schedules a debounced draft write and returns immediately. The
// dashboard calls this on every keystroke pause.
// POST /api/authorizations/:id/autosave
func (h *AuthorizationHandler) AutoSave(c *fiber.Ctx) error {
	var in dto.AuthorizationDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.drafts.Schedule(c.Params("id"), GetUserID(c), in)
	return c.SendStatus(fiber.StatusAccepted)
}

// Submit validates the full pre-flight form and moves the authorization to
// pending. Field errors come back as a 400 with a fields map and leave the
// stored status untouched.
// POST /api/authorizations/:id/submit
func (h *AuthorizationHandler) Submit(c *fiber.Ctx) error {
	// Run any pending auto-save first so the submit validates the latest
	// fields.
	h.drafts.Flush(c.Params("id"))
	resp, err := h.uc.Submit(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Approve signs off the authorization. Instructor only.
// POST /api/authorizations/:id/approve
func (h *AuthorizationHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Reject sends the authorization back with a reason. Instructor only.
// POST /api/authorizations/:id/reject
func (h *AuthorizationHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Cancel withdraws the authorization.
// POST /api/authorizations/:id/cancel
func (h *AuthorizationHandler) Cancel(c *fiber.Ctx) error {
	resp, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ListPending returns the instructor review queue, oldest first.
// GET /api/authorizations/pending
func (h *AuthorizationHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.ListPending(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ListMine returns the authenticated student's authorizations.
// GET /api/authorizations
func (h *AuthorizationHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.ListByStudent(c.Context(), GetUserID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
