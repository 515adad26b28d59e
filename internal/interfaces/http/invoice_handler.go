package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/billing"
	"github.com/flightdesk/flightdesk-api/internal/application/dto"
)

// InvoiceHandler handles invoices, their items and status actions.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create opens a draft invoice, optionally with initial items.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID returns one invoice with items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// List returns invoices filtered by member and status.
// GET /api/invoices?member_id=&status=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(c.Context(), c.Query("member_id"), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// AddItem appends a billing line and re-aggregates totals.
// POST /api/invoices/:id/items
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateItem rewrites one line and re-aggregates totals.
// PUT /api/invoices/:id/items/:itemID
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateItem(c.Context(), c.Params("id"), c.Params("itemID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// DeleteItem removes one line and re-aggregates totals.
// DELETE /api/invoices/:id/items/:itemID
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteItem(c.Context(), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Issue moves the invoice to pending and emails the member.
// POST /api/invoices/:id/issue
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	resp, err := h.uc.Issue(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// MarkPaid settles the invoice.
// POST /api/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	resp, err := h.uc.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Cancel voids the invoice.
// POST /api/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	resp, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Refund reverses a paid invoice.
// POST /api/invoices/:id/refund
func (h *InvoiceHandler) Refund(c *fiber.Ctx) error {
	resp, err := h.uc.Refund(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SweepOverdue flips pending invoices past their due date to overdue.
// POST /api/invoices/sweep-overdue
func (h *InvoiceHandler) SweepOverdue(c *fiber.Ctx) error {
	n, err := h.uc.SweepOverdue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"marked_overdue": n})
}

// DownloadPDF streams the printable invoice.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.GenerateInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
