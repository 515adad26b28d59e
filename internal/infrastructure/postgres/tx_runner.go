package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flightdesk/flightdesk-api/internal/application/billing"
	"github.com/flightdesk/flightdesk-api/internal/application/booking"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ billing.InvoiceTxRunner = (*TxRunner)(nil)
var _ booking.CheckInTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice begins a transaction, runs fn with an invoice repository bound
// to it, and commits or rolls back.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckIn begins a transaction with the booking, aircraft and invoice
// repositories bound to it. Check-in completes the booking, advances the
// meters and creates the draft invoice in one commit.
func (r *TxRunner) RunCheckIn(ctx context.Context, fn func(
	bookingRepo repository.BookingRepository,
	aircraftRepo repository.AircraftRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBookingRepository(tx), NewAircraftRepository(tx), NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
