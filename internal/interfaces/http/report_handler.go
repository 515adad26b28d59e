package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/usecase"
	"github.com/flightdesk/flightdesk-api/internal/infrastructure/export"
)

// ReportHandler serves operational reports as JSON, CSV or XLSX.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Bookings reports bookings in the period.
// GET /api/reports/bookings?from=&to=&format=csv|xlsx
func (h *ReportHandler) Bookings(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC 3339 dates"})
	}
	if format := c.Query("format"); format != "" {
		table, err := h.uc.BookingsTable(from, to)
		if err != nil {
			return writeError(c, err)
		}
		return sendTable(c, table, format)
	}
	rows, err := h.uc.Bookings(from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// FlightTime reports aggregated hours per aircraft and member.
// GET /api/reports/flight-time?from=&to=&format=csv|xlsx
func (h *ReportHandler) FlightTime(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC 3339 dates"})
	}
	if format := c.Query("format"); format != "" {
		table, err := h.uc.FlightTimeTable(from, to)
		if err != nil {
			return writeError(c, err)
		}
		return sendTable(c, table, format)
	}
	rows, err := h.uc.FlightTime(from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// InvoiceSummary reports invoice counts and amounts by status.
// GET /api/reports/invoice-summary?from=&to=&format=csv|xlsx
func (h *ReportHandler) InvoiceSummary(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to must be RFC 3339 dates"})
	}
	if format := c.Query("format"); format != "" {
		table, err := h.uc.InvoiceSummaryTable(from, to)
		if err != nil {
			return writeError(c, err)
		}
		return sendTable(c, table, format)
	}
	rows, err := h.uc.InvoiceSummary(from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// parsePeriod reads from/to query params. Defaults: the last 30 days.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

func sendTable(c *fiber.Ctx, table export.Table, format string) error {
	switch format {
	case "csv":
		data, err := export.WriteCSV(table)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+table.Name+`.csv"`)
		return c.Send(data)
	case "xlsx":
		data, err := export.WriteXLSX(table)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+table.Name+`.xlsx"`)
		return c.Send(data)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format must be csv or xlsx"})
	}
}
