package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string]*entity.InvoiceItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string]*entity.InvoiceItem{},
	}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}
func (r *memInvoiceRepo) List(string, string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) ListPendingPastDue(asOf time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.Status == entity.InvoiceStatusPending && inv.DueDate.Before(asOf) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) GetItem(id string) (*entity.InvoiceItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}
func (r *memInvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, item := range r.items {
		if item.InvoiceID == invoiceID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) DeleteItem(id string) error {
	delete(r.items, id)
	return nil
}

type memTxRunner struct{ repo *memInvoiceRepo }

func (r *memTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(r.repo)
}

type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(*entity.User) error { return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(*entity.User) error { return nil }

type memSettings struct{}

func (memSettings) GetInt(category, key string, def int) int { return def }

func newInvoiceUseCase() (*InvoiceUseCase, *memInvoiceRepo) {
	repo := newMemInvoiceRepo()
	users := &memUserRepo{users: map[string]*entity.User{
		"member-1": {ID: "member-1", Email: "m@example.com", Name: "M"},
	}}
	uc := NewInvoiceUseCase(&memTxRunner{repo: repo}, repo, users, memSettings{}, nil)
	return uc, repo
}

func item(desc, qty, price, rate string, taxable bool) dto.InvoiceItemInput {
	return dto.InvoiceItemInput{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
		TaxRate:     decimal.RequireFromString(rate),
		Taxable:     taxable,
	}
}

func TestCreate_TotalsAreRoundThenSum(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	// Two lines whose unrounded values carry third decimals: each line rounds
	// on its own, totals sum the rounded values.
	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items: []dto.InvoiceItemInput{
			item("Landing fees", "3", "11.115", "0.15", true), // 33.35 (33.345 rounds up)
			item("Headset hire", "1", "10.005", "0.15", true), // 10.01
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, out.Status)
	require.Len(t, out.Items, 2)
	// 33.35 + 10.01, not round(33.345 + 10.005) = 43.35
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("43.36")), "subtotal %s", out.Subtotal)
	// tax: round(33.35*0.15)=5.00 + round(10.01*0.15)=1.50
	assert.True(t, out.TaxTotal.Equal(decimal.RequireFromString("6.50")), "tax %s", out.TaxTotal)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("49.86")), "total %s", out.TotalAmount)
}

func TestCreate_NonTaxableLineHasNoTax(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items: []dto.InvoiceItemInput{
			item("Landing levy (exempt)", "1", "25.00", "0.15", false),
		},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].TaxAmount.IsZero())
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestCreate_InclusiveRateDerivesExclusivePrice(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	inclusive := decimal.RequireFromString("115.00")
	out, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items: []dto.InvoiceItemInput{{
			Description:   "Aircraft hire",
			Quantity:      decimal.RequireFromString("1"),
			RateInclusive: &inclusive,
			TaxRate:       decimal.RequireFromString("0.15"),
			Taxable:       true,
		}},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.RequireFromString("100.00")), "unit price %s", out.Items[0].UnitPrice)
	assert.True(t, out.Items[0].LineTotal.Equal(decimal.RequireFromString("115.00")))
}

func TestCreate_RejectsBadItems(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	cases := []dto.InvoiceItemInput{
		item("", "1", "10.00", "0.15", true),      // empty description
		item("Fuel", "0", "10.00", "0.15", true),  // quantity below 1
		item("Fuel", "1", "-10.00", "0.15", true), // negative price
		item("Fuel", "1", "10.00", "-0.15", true), // negative tax rate
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
			MemberID: "member-1",
			Items:    []dto.InvoiceItemInput{in},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAddItem_ReaggregatesTotals(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items:    []dto.InvoiceItemInput{item("Aircraft hire", "1", "200.00", "0.15", true)},
	})
	require.NoError(t, err)

	out, err := uc.AddItem(context.Background(), created.ID, item("Briefing", "1", "50.00", "0.15", true))
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, out.TaxTotal.Equal(decimal.RequireFromString("37.50")))
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("287.50")))
}

func TestDeleteItem_ReaggregatesTotals(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items: []dto.InvoiceItemInput{
			item("Aircraft hire", "1", "200.00", "0.15", true),
			item("Briefing", "1", "50.00", "0.15", true),
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Items, 2)

	out, err := uc.DeleteItem(context.Background(), created.ID, created.Items[1].ID)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("230.00")))
}

func TestAddItem_PaidInvoiceIsImmutable(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items:    []dto.InvoiceItemInput{item("Aircraft hire", "1", "200.00", "0.15", true)},
	})
	require.NoError(t, err)

	_, err = uc.Issue(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = uc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), created.ID, item("Late fee", "1", "10.00", "0.15", true))
	assert.ErrorIs(t, err, domain.ErrInvoiceImmutable)
}

func TestLifecycle_IssuePayRefund(t *testing.T) {
	uc, _ := newInvoiceUseCase()

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items:    []dto.InvoiceItemInput{item("Aircraft hire", "1", "200.00", "0.15", true)},
	})
	require.NoError(t, err)

	out, err := uc.Issue(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, out.Status)

	out, err = uc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, out.Status)
	assert.NotNil(t, out.PaidAt)

	out, err = uc.Refund(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusRefunded, out.Status)

	// Terminal: no further transitions.
	_, err = uc.MarkPaid(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSweepOverdue(t *testing.T) {
	uc, repo := newInvoiceUseCase()

	due := time.Now().AddDate(0, 0, -3)
	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		DueDate:  &due,
		Items:    []dto.InvoiceItemInput{item("Aircraft hire", "1", "200.00", "0.15", true)},
	})
	require.NoError(t, err)
	_, err = uc.Issue(context.Background(), created.ID)
	require.NoError(t, err)

	// A second invoice still inside its due window stays pending.
	current, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		MemberID: "member-1",
		Items:    []dto.InvoiceItemInput{item("Briefing", "1", "50.00", "0.15", true)},
	})
	require.NoError(t, err)
	_, err = uc.Issue(context.Background(), current.ID)
	require.NoError(t, err)

	moved, err := uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	assert.Equal(t, entity.InvoiceStatusOverdue, repo.invoices[created.ID].Status)
	assert.Equal(t, entity.InvoiceStatusPending, repo.invoices[current.ID].Status)
}
