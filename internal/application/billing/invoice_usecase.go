package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/application/ports"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	domainbilling "github.com/flightdesk/flightdesk-api/internal/domain/billing"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// SettingsReader is the minimal settings contract billing needs.
type SettingsReader interface {
	GetInt(category, key string, def int) int
}

// DefaultDueDays fallback when the billing/invoice_due_days setting is absent.
const DefaultDueDays = 14

// InvoiceUseCase owns the invoice lifecycle: creation, item edits with
// derived-field recomputation, status transitions and the overdue sweep.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	settings    SettingsReader
	notifier    ports.Notifier
}

// NewInvoiceUseCase builds the use case. notifier may be nil (no email).
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	settings SettingsReader,
	notifier ports.Notifier,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		settings:    settings,
		notifier:    notifier,
	}
}

// Create creates an invoice, optionally with initial items, in one
// transaction. The due date defaults from billing/invoice_due_days.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.MemberID == "" {
		return nil, domain.ErrInvalidInput
	}
	member, err := uc.userRepo.GetByID(in.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	for i := range in.Items {
		if err := validateItemInput(&in.Items[i]); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	due := now.AddDate(0, 0, uc.settings.GetInt("billing", "invoice_due_days", DefaultDueDays))
	if in.DueDate != nil {
		due = *in.DueDate
	}

	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		MemberID:  in.MemberID,
		BookingID: in.BookingID,
		Number:    fmt.Sprintf("INV-%d", now.Unix()),
		IssueDate: now,
		DueDate:   due,
		Status:    entity.InvoiceStatusDraft,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	amounts := make([]domainbilling.ItemAmounts, 0, len(in.Items))
	for _, input := range in.Items {
		item := buildItem(inv.ID, input)
		items = append(items, item)
		amounts = append(amounts, itemAmounts(item))
	}
	applyTotals(inv, domainbilling.Totals(amounts))

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// Get returns the invoice with its items.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// List returns invoices filtered by member and/or status.
func (uc *InvoiceUseCase) List(ctx context.Context, memberID, status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.List(memberID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// AddItem appends a line and re-aggregates the invoice totals atomically.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, invoiceID string, in dto.InvoiceItemInput) (*dto.InvoiceResponse, error) {
	if err := validateItemInput(&in); err != nil {
		return nil, err
	}
	inv, err := uc.editableInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	item := buildItem(inv.ID, in)

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.CreateItem(item); err != nil {
			return err
		}
		return reaggregate(invoiceRepo, inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, invoiceID)
}

// UpdateItem rewrites a line (quantity/rate edits) and re-aggregates. When the
// request carries a tax-inclusive rate the exclusive price is derived from it.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, invoiceID, itemID string, in dto.InvoiceItemInput) (*dto.InvoiceResponse, error) {
	if err := validateItemInput(&in); err != nil {
		return nil, err
	}
	inv, err := uc.editableInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.invoiceRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.InvoiceID != invoiceID {
		return nil, domain.ErrNotFound
	}

	updated := buildItem(inv.ID, in)
	updated.ID = existing.ID

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.UpdateItem(updated); err != nil {
			return err
		}
		return reaggregate(invoiceRepo, inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, invoiceID)
}

// DeleteItem removes a line and re-aggregates.
func (uc *InvoiceUseCase) DeleteItem(ctx context.Context, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.editableInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.invoiceRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.InvoiceID != invoiceID {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.DeleteItem(itemID); err != nil {
			return err
		}
		return reaggregate(invoiceRepo, inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, invoiceID)
}

// Issue moves a draft to pending and emails the member. Email failure is
// logged, never rolled back.
func (uc *InvoiceUseCase) Issue(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.applyAction(id, domainbilling.ActionIssue)
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		if member, err := uc.userRepo.GetByID(inv.MemberID); err == nil && member != nil {
			if err := uc.notifier.InvoiceIssued(ctx, member.Email, member.Name, inv); err != nil {
				log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("invoice issue email failed")
			}
		}
	}
	return uc.Get(ctx, id)
}

// MarkPaid settles a pending or overdue invoice.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if _, err := uc.applyAction(id, domainbilling.ActionPay); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Cancel voids a draft, pending or overdue invoice.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if _, err := uc.applyAction(id, domainbilling.ActionCancel); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Refund reverses a paid invoice.
func (uc *InvoiceUseCase) Refund(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if _, err := uc.applyAction(id, domainbilling.ActionRefund); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// SweepOverdue flips pending invoices past their due date to overdue and
// returns how many moved. Request-driven; a cron hits the endpoint.
func (uc *InvoiceUseCase) SweepOverdue(ctx context.Context) (int, error) {
	pending, err := uc.invoiceRepo.ListPendingPastDue(time.Now())
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, inv := range pending {
		next, ok := domainbilling.NextStatus(inv.Status, domainbilling.ActionOverdue)
		if !ok {
			continue
		}
		inv.Status = next
		inv.UpdatedAt = time.Now()
		if err := uc.invoiceRepo.Update(inv); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// ── internals ────────────────────────────────────────────────────────────────

func (uc *InvoiceUseCase) load(id string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (uc *InvoiceUseCase) editableInvoice(id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !inv.Editable() {
		return nil, domain.ErrInvoiceImmutable
	}
	return inv, nil
}

func (uc *InvoiceUseCase) applyAction(id, action string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	next, ok := domainbilling.NextStatus(inv.Status, action)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	inv.Status = next
	inv.UpdatedAt = now
	if next == entity.InvoiceStatusPaid {
		inv.PaidAt = &now
	}
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// validateItemInput guards the calc helper: the helper itself does not defend
// against negative rates or zero quantities.
func validateItemInput(in *dto.InvoiceItemInput) error {
	if in.Description == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity.LessThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.RateInclusive != nil {
		if in.RateInclusive.IsNegative() {
			return domain.ErrInvalidInput
		}
	} else if in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func buildItem(invoiceID string, in dto.InvoiceItemInput) *entity.InvoiceItem {
	unitPrice := in.UnitPrice
	if in.RateInclusive != nil {
		unitPrice = domainbilling.ExclusiveFromInclusive(*in.RateInclusive, in.TaxRate)
	}
	calc := domainbilling.ComputeItem(in.Quantity, unitPrice, in.TaxRate, in.Taxable)
	return &entity.InvoiceItem{
		ID:            uuid.New().String(),
		InvoiceID:     invoiceID,
		Description:   in.Description,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		TaxRate:       in.TaxRate,
		Taxable:       in.Taxable,
		Amount:        calc.Amount,
		TaxAmount:     calc.TaxAmount,
		LineTotal:     calc.LineTotal,
		RateInclusive: calc.RateInclusive,
	}
}

func itemAmounts(item *entity.InvoiceItem) domainbilling.ItemAmounts {
	return domainbilling.ItemAmounts{
		Amount:        item.Amount,
		TaxAmount:     item.TaxAmount,
		LineTotal:     item.LineTotal,
		RateInclusive: item.RateInclusive,
	}
}

func applyTotals(inv *entity.Invoice, totals domainbilling.InvoiceTotals) {
	inv.Subtotal = totals.Subtotal
	inv.TaxTotal = totals.TaxTotal
	inv.TotalAmount = totals.TotalAmount
}

// reaggregate recomputes header totals from the stored (already rounded)
// item fields inside the caller's transaction.
func reaggregate(invoiceRepo repository.InvoiceRepository, inv *entity.Invoice) error {
	items, err := invoiceRepo.ListItems(inv.ID)
	if err != nil {
		return err
	}
	amounts := make([]domainbilling.ItemAmounts, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, itemAmounts(item))
	}
	applyTotals(inv, domainbilling.Totals(amounts))
	inv.UpdatedAt = time.Now()
	return invoiceRepo.Update(inv)
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:          inv.ID,
		MemberID:    inv.MemberID,
		BookingID:   inv.BookingID,
		Number:      inv.Number,
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		Status:      inv.Status,
		Subtotal:    inv.Subtotal,
		TaxTotal:    inv.TaxTotal,
		TotalAmount: inv.TotalAmount,
		Notes:       inv.Notes,
		PaidAt:      inv.PaidAt,
		Items:       make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:            item.ID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			Taxable:       item.Taxable,
			Amount:        item.Amount,
			TaxAmount:     item.TaxAmount,
			LineTotal:     item.LineTotal,
			RateInclusive: item.RateInclusive,
		})
	}
	return out
}
