package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice states. draft and pending are editable; paid is immutable.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusRefunded  = "refunded"
)

// Invoice is the billing header. Subtotal, TaxTotal and TotalAmount are sums
// of the already-rounded per-item values, never re-rounded sums.
type Invoice struct {
	ID          string
	MemberID    string
	BookingID   string // optional: set when generated from a check-in
	Number      string
	IssueDate   time.Time
	DueDate     time.Time
	Status      string
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Editable reports whether items can still be added or changed.
func (i *Invoice) Editable() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusPending
}
