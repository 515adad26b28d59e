package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/booking"
	"github.com/flightdesk/flightdesk-api/internal/application/dto"
)

// BookingHandler handles bookings and the check-out / check-in flow.
type BookingHandler struct {
	uc *booking.BookingUseCase
}

// NewBookingHandler builds the handler.
func NewBookingHandler(uc *booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create reserves an aircraft.
// POST /api/bookings
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns one booking.
// GET /api/bookings/:id
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ListByMember returns a member's bookings.
// GET /api/bookings/member/:memberID
func (h *BookingHandler) ListByMember(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.ListByMember(c.Context(), c.Params("memberID"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// CheckOut records the departure meters. Requires an approved authorization
// or a recorded override when the flight needs one. Retryable: checking out
// an already checked-out booking returns the current state.
// POST /api/bookings/:id/checkout
func (h *BookingHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CheckOut(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// CheckIn records the return meters, completes the booking and optionally
// raises the draft invoice.
// POST /api/bookings/:id/checkin
func (h *BookingHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CheckIn(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Override records an authorization override on the booking. Instructor or
// admin only (enforced in the router).
// POST /api/bookings/:id/override
func (h *BookingHandler) Override(c *fiber.Ctx) error {
	var in dto.OverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.RecordOverride(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Cancel cancels a confirmed booking.
// POST /api/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	resp, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
