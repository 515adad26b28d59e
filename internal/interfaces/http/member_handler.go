package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/auth"
	"github.com/flightdesk/flightdesk-api/internal/application/dto"
)

// MemberHandler serves the member roster.
type MemberHandler struct {
	uc *auth.AuthUseCase
}

// NewMemberHandler builds the handler.
func NewMemberHandler(uc *auth.AuthUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// Create provisions an account with an explicit role.
// POST /api/members
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.CreateMember(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List returns member profiles.
// GET /api/members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	users, err := h.uc.ListUsers(page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// GetByID returns one member profile.
// GET /api/members/:id
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetUser(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
