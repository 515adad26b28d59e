package repository

import (
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// InvoiceRepository persistence port for invoices and their items.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	List(memberID, status string, limit, offset int) ([]*entity.Invoice, error)
	// Update writes status, totals, due date, notes and paid_at.
	Update(inv *entity.Invoice) error
	// ListPendingPastDue returns pending invoices with due_date < asOf, for
	// the overdue sweep.
	ListPendingPastDue(asOf time.Time) ([]*entity.Invoice, error)

	CreateItem(item *entity.InvoiceItem) error
	GetItem(id string) (*entity.InvoiceItem, error)
	ListItems(invoiceID string) ([]*entity.InvoiceItem, error)
	UpdateItem(item *entity.InvoiceItem) error
	DeleteItem(id string) error
}
