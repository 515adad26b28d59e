package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/membership"
)

// MembershipHandler handles membership periods and tiers.
type MembershipHandler struct {
	uc *membership.MembershipUseCase
}

// NewMembershipHandler builds the handler.
func NewMembershipHandler(uc *membership.MembershipUseCase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

// Create starts a membership for a member.
// POST /api/memberships
func (h *MembershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByMember returns the member's current membership with derived status.
// GET /api/memberships/member/:memberID
func (h *MembershipHandler) GetByMember(c *fiber.Ctx) error {
	resp, err := h.uc.GetByMember(c.Context(), c.Params("memberID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Renew extends the membership and raises the fee invoice.
// POST /api/memberships/:id/renew
func (h *MembershipHandler) Renew(c *fiber.Ctx) error {
	var in dto.RenewMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Renew(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// MarkFeePaid records the renewal fee as settled.
// POST /api/memberships/:id/mark-paid
func (h *MembershipHandler) MarkFeePaid(c *fiber.Ctx) error {
	resp, err := h.uc.MarkFeePaid(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SendExpiryReminders triggers the reminder sweep and reports how many
// members were mailed.
// POST /api/memberships/expiring/remind
func (h *MembershipHandler) SendExpiryReminders(c *fiber.Ctx) error {
	n, err := h.uc.SendExpiryReminders(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reminders_sent": n})
}

// CreateType defines a membership tier.
// POST /api/memberships/types
func (h *MembershipHandler) CreateType(c *fiber.Ctx) error {
	var in dto.CreateMembershipTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateType(c.Context(), in.Name, in.Price, in.DurationMonths, in.Benefits)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTypes returns all tiers.
// GET /api/memberships/types
func (h *MembershipHandler) ListTypes(c *fiber.Ctx) error {
	resp, err := h.uc.ListTypes(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
