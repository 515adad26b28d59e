package billing

import (
	"context"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// InvoiceTxRunner runs a callback with an invoice repository bound to one
// transaction. Item writes and the total re-aggregation must land atomically.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator renders the printable invoice.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, member *entity.User, items []*entity.InvoiceItem) ([]byte, error)
}
