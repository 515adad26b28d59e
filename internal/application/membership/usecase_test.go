package membership

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
)

type memMembershipRepo struct {
	records map[string]*entity.Membership
}

func (r *memMembershipRepo) Create(m *entity.Membership) error {
	cp := *m
	r.records[m.ID] = &cp
	return nil
}
func (r *memMembershipRepo) GetByID(id string) (*entity.Membership, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}
func (r *memMembershipRepo) GetCurrentByMember(memberID string) (*entity.Membership, error) {
	var latest *entity.Membership
	for _, m := range r.records {
		if m.MemberID != memberID {
			continue
		}
		if latest == nil || m.ExpiryDate.After(latest.ExpiryDate) {
			cp := *m
			latest = &cp
		}
	}
	return latest, nil
}
func (r *memMembershipRepo) Update(m *entity.Membership) error {
	cp := *m
	r.records[m.ID] = &cp
	return nil
}
func (r *memMembershipRepo) ListExpiringBetween(from, to time.Time) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range r.records {
		if m.FeePaid && !m.ExpiryDate.Before(from) && !m.ExpiryDate.After(to) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTypeRepo struct {
	records map[string]*entity.MembershipType
}

func (r *memTypeRepo) Create(t *entity.MembershipType) error {
	cp := *t
	r.records[t.ID] = &cp
	return nil
}
func (r *memTypeRepo) GetByID(id string) (*entity.MembershipType, error) {
	t, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
func (r *memTypeRepo) List() ([]*entity.MembershipType, error) { return nil, nil }

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

type fakeInvoiceCreator struct {
	requests []dto.CreateInvoiceRequest
}

func (f *fakeInvoiceCreator) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	f.requests = append(f.requests, in)
	return &dto.InvoiceResponse{ID: "inv-1", MemberID: in.MemberID}, nil
}

type membershipFixture struct {
	uc       *MembershipUseCase
	repo     *memMembershipRepo
	invoices *fakeInvoiceCreator
	now      time.Time
}

func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{
		repo:     &memMembershipRepo{records: map[string]*entity.Membership{}},
		invoices: &fakeInvoiceCreator{},
		now:      time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	types := &memTypeRepo{records: map[string]*entity.MembershipType{
		"type-annual": {
			ID: "type-annual", Name: "Annual", DurationMonths: 12,
			Price: decimal.RequireFromString("350.00"),
		},
	}}
	users := &memUserRepo{users: map[string]*entity.User{
		"member-1": {ID: "member-1", Email: "m@example.com", Name: "M"},
	}}
	f.uc = NewMembershipUseCase(f.repo, types, users, memSettings{}, f.invoices, nil)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *membershipFixture) addMembership(expiry time.Time, feePaid bool) *entity.Membership {
	m := &entity.Membership{
		ID:         "ms-1",
		MemberID:   "member-1",
		TypeID:     "type-annual",
		StartDate:  expiry.AddDate(-1, 0, 0),
		ExpiryDate: expiry,
		FeePaid:    feePaid,
	}
	f.repo.records[m.ID] = m
	return m
}

func TestRenew_ActiveExtendsFromExpiry(t *testing.T) {
	f := newMembershipFixture()
	expiry := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) // still in the future
	f.addMembership(expiry, true)

	out, err := f.uc.Renew(context.Background(), "ms-1", dto.RenewMembershipRequest{})
	require.NoError(t, err)

	want := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, out.ExpiryDate.Equal(want), "expiry %s", out.ExpiryDate)
}

func TestRenew_LapsedExtendsFromToday(t *testing.T) {
	f := newMembershipFixture()
	expiry := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC) // lapsed
	f.addMembership(expiry, true)

	out, err := f.uc.Renew(context.Background(), "ms-1", dto.RenewMembershipRequest{})
	require.NoError(t, err)

	want := f.now.AddDate(0, 12, 0)
	assert.True(t, out.ExpiryDate.Equal(want), "expiry %s", out.ExpiryDate)
}

func TestRenew_ResetsFeeAndRaisesInvoice(t *testing.T) {
	f := newMembershipFixture()
	f.addMembership(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), true)

	out, err := f.uc.Renew(context.Background(), "ms-1", dto.RenewMembershipRequest{})
	require.NoError(t, err)

	assert.False(t, f.repo.records["ms-1"].FeePaid)
	assert.Equal(t, "inv-1", out.InvoiceID)
	require.Len(t, f.invoices.requests, 1)
	req := f.invoices.requests[0]
	assert.Equal(t, "member-1", req.MemberID)
	require.Len(t, req.Items, 1)
	assert.True(t, req.Items[0].UnitPrice.Equal(decimal.RequireFromString("350.00")))
	assert.False(t, req.Items[0].Taxable)
}

func TestRenew_UnknownMembership(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.uc.Renew(context.Background(), "nope", dto.RenewMembershipRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkFeePaid_SecondCallConflicts(t *testing.T) {
	f := newMembershipFixture()
	f.addMembership(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), false)

	_, err := f.uc.MarkFeePaid(context.Background(), "ms-1")
	require.NoError(t, err)

	_, err = f.uc.MarkFeePaid(context.Background(), "ms-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetByMember_NoRecordIsStatusNone(t *testing.T) {
	f := newMembershipFixture()

	out, err := f.uc.GetByMember(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusNone, out.Status)
}

func TestGetByMember_DerivedStatus(t *testing.T) {
	f := newMembershipFixture()
	// Expired 10 days ago with the default 30-day grace window.
	f.addMembership(f.now.AddDate(0, 0, -10), true)

	out, err := f.uc.GetByMember(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusGrace, out.Status)
}
