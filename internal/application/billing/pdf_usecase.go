package billing

import (
	"context"

	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// PDFUseCase loads an invoice with its member and items and renders the
// printable document through the generator port.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, userRepo repository.UserRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, userRepo: userRepo, generator: generator}
}

// GenerateInvoicePDF returns the PDF bytes and a suggested file name.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	member, err := uc.userRepo.GetByID(inv.MemberID)
	if err != nil {
		return nil, "", err
	}
	if member == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv, member, items)
	if err != nil {
		return nil, "", err
	}
	return pdf, inv.Number + ".pdf", nil
}
