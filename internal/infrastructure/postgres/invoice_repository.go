package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, member_id, booking_id, number, issue_date, due_date, status,
	subtotal, tax_total, total_amount, notes, paid_at, created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, description, quantity, unit_price, tax_rate, taxable,
	amount, tax_amount, line_total, rate_inclusive`

// Create persists the invoice header.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.MemberID, nullIfEmpty(inv.BookingID), inv.Number, inv.IssueDate, inv.DueDate, inv.Status,
		inv.Subtotal, inv.TaxTotal, inv.TotalAmount, inv.Notes, inv.PaidAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header by ID, (nil, nil) when missing.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// List returns invoices newest first, filtered by member and status when set.
func (r *InvoiceRepo) List(memberID, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	if memberID != "" {
		args = append(args, memberID)
		query += fmt.Sprintf(" AND member_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY issue_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return r.list(query, args...)
}

// Update writes status, totals, due date, notes and paid_at.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET due_date = $2, status = $3, subtotal = $4, tax_total = $5, total_amount = $6,
			notes = $7, paid_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.DueDate, inv.Status, inv.Subtotal, inv.TaxTotal, inv.TotalAmount,
		inv.Notes, inv.PaidAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ListPendingPastDue returns pending invoices whose due date is before asOf.
func (r *InvoiceRepo) ListPendingPastDue(asOf time.Time) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE status = 'pending' AND due_date < $1 ORDER BY due_date`
	return r.list(query, asOf)
}

// CreateItem persists one billing line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice, item.TaxRate, item.Taxable,
		item.Amount, item.TaxAmount, item.LineTotal, item.RateInclusive,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetItem fetches one line by ID, (nil, nil) when missing.
func (r *InvoiceRepo) GetItem(id string) (*entity.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE id = $1`
	var it entity.InvoiceItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Taxable,
		&it.Amount, &it.TaxAmount, &it.LineTotal, &it.RateInclusive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice item: %w", err)
	}
	return &it, nil
}

// ListItems returns the lines of an invoice in insertion order.
func (r *InvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Taxable, &it.Amount, &it.TaxAmount, &it.LineTotal, &it.RateInclusive); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateItem rewrites one line, derived amounts included.
func (r *InvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items SET description = $2, quantity = $3, unit_price = $4, tax_rate = $5, taxable = $6,
			amount = $7, tax_amount = $8, line_total = $9, rate_inclusive = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.Quantity, item.UnitPrice, item.TaxRate, item.Taxable,
		item.Amount, item.TaxAmount, item.LineTotal, item.RateInclusive,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}

// DeleteItem removes one line.
func (r *InvoiceRepo) DeleteItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var bookingID *string
	err := row.Scan(
		&inv.ID, &inv.MemberID, &bookingID, &inv.Number, &inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.Subtotal, &inv.TaxTotal, &inv.TotalAmount, &inv.Notes, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.BookingID = emptyIfNull(bookingID)
	return &inv, nil
}
