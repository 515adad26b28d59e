package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body for POST /api/invoices. DueDate defaults from the
// billing/invoice_due_days setting when zero.
type CreateInvoiceRequest struct {
	MemberID  string             `json:"member_id"`
	BookingID string             `json:"booking_id,omitempty"`
	DueDate   *time.Time         `json:"due_date,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Items     []InvoiceItemInput `json:"items,omitempty"`
}

// InvoiceItemInput one line on create/add. Either UnitPrice (tax-exclusive)
// or RateInclusive may be supplied; when RateInclusive is set the exclusive
// price is derived from it.
type InvoiceItemInput struct {
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	RateInclusive *decimal.Decimal `json:"rate_inclusive,omitempty"`
	TaxRate       decimal.Decimal  `json:"tax_rate"`
	Taxable       bool             `json:"taxable"`
}

// InvoiceItemResponse one stored line with derived fields.
type InvoiceItemResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Taxable       bool            `json:"taxable"`
	Amount        decimal.Decimal `json:"amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
	RateInclusive decimal.Decimal `json:"rate_inclusive"`
}

// InvoiceResponse invoice header with items.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	MemberID    string                `json:"member_id"`
	BookingID   string                `json:"booking_id,omitempty"`
	Number      string                `json:"number"`
	IssueDate   time.Time             `json:"issue_date"`
	DueDate     time.Time             `json:"due_date"`
	Status      string                `json:"status"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	TaxTotal    decimal.Decimal       `json:"tax_total"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Notes       string                `json:"notes,omitempty"`
	PaidAt      *time.Time            `json:"paid_at,omitempty"`
	Items       []InvoiceItemResponse `json:"items"`
}
