package booking

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

type memBookingRepo struct {
	records map[string]*entity.Booking
}

func (r *memBookingRepo) Create(b *entity.Booking) error {
	cp := *b
	r.records[b.ID] = &cp
	return nil
}
func (r *memBookingRepo) GetByID(id string) (*entity.Booking, error) {
	b, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}
func (r *memBookingRepo) ListByMember(string, int, int) ([]*entity.Booking, error) { return nil, nil }
func (r *memBookingRepo) ListBetween(time.Time, time.Time) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *memBookingRepo) Update(b *entity.Booking) error {
	cp := *b
	r.records[b.ID] = &cp
	return nil
}

type memAircraftRepo struct {
	records map[string]*entity.Aircraft
}

func (r *memAircraftRepo) Create(a *entity.Aircraft) error {
	cp := *a
	r.records[a.ID] = &cp
	return nil
}
func (r *memAircraftRepo) GetByID(id string) (*entity.Aircraft, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
func (r *memAircraftRepo) List(int, int) ([]*entity.Aircraft, error) { return nil, nil }
func (r *memAircraftRepo) Update(a *entity.Aircraft) error {
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

type memAuthRepo struct {
	approved map[string]*entity.FlightAuthorization // keyed by booking ID
}

func (r *memAuthRepo) Create(*entity.FlightAuthorization) error { return nil }
func (r *memAuthRepo) GetByID(string) (*entity.FlightAuthorization, error) { return nil, nil }
func (r *memAuthRepo) GetApprovedByBooking(bookingID string) (*entity.FlightAuthorization, error) {
	return r.approved[bookingID], nil
}
func (r *memAuthRepo) ListByStudent(string, int, int) ([]*entity.FlightAuthorization, error) {
	return nil, nil
}
func (r *memAuthRepo) ListPending(int, int) ([]*entity.FlightAuthorization, error) {
	return nil, nil
}
func (r *memAuthRepo) Update(*entity.FlightAuthorization) error { return nil }

type memObservationRepo struct {
	open []*entity.Observation
}

func (r *memObservationRepo) Create(*entity.Observation) error { return nil }
func (r *memObservationRepo) GetByID(string) (*entity.Observation, error) { return nil, nil }
func (r *memObservationRepo) ListByAircraft(aircraftID string, openOnly bool) ([]*entity.Observation, error) {
	var out []*entity.Observation
	for _, o := range r.open {
		if o.AircraftID == aircraftID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *memObservationRepo) Update(*entity.Observation) error { return nil }

type memUserRepo struct {
	records map[string]*entity.User
}

func (r *memUserRepo) Create(*entity.User) error { return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	return r.records[id], nil
}
func (r *memUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(*entity.User) error { return nil }

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    []*entity.InvoiceItem
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) GetByID(string) (*entity.Invoice, error) { return nil, nil }
func (r *memInvoiceRepo) List(string, string, int, int) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *memInvoiceRepo) Update(*entity.Invoice) error { return nil }
func (r *memInvoiceRepo) ListPendingPastDue(time.Time) ([]*entity.Invoice, error) {
	return nil, nil
}
func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}
func (r *memInvoiceRepo) GetItem(string) (*entity.InvoiceItem, error) { return nil, nil }
func (r *memInvoiceRepo) ListItems(string) ([]*entity.InvoiceItem, error) { return nil, nil }
func (r *memInvoiceRepo) UpdateItem(*entity.InvoiceItem) error { return nil }
func (r *memInvoiceRepo) DeleteItem(string) error { return nil }

// memTxRunner passes the same in-memory repos through; there is no rollback.
type memTxRunner struct {
	bookings *memBookingRepo
	aircraft *memAircraftRepo
	invoices *memInvoiceRepo
}

func (r *memTxRunner) RunCheckIn(ctx context.Context, fn func(
	bookingRepo repository.BookingRepository,
	aircraftRepo repository.AircraftRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(r.bookings, r.aircraft, r.invoices)
}

type memSettings map[string]string

func (s memSettings) GetString(category, key, def string) string {
	if v, ok := s[category+"/"+key]; ok {
		return v
	}
	return def
}
func (s memSettings) GetInt(category, key string, def int) int { return def }

type bookingFixture struct {
	uc       *BookingUseCase
	bookings *memBookingRepo
	aircraft *memAircraftRepo
	auths    *memAuthRepo
	obs      *memObservationRepo
	invoices *memInvoiceRepo
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: &memBookingRepo{records: map[string]*entity.Booking{}},
		aircraft: &memAircraftRepo{records: map[string]*entity.Aircraft{}},
		auths:    &memAuthRepo{approved: map[string]*entity.FlightAuthorization{}},
		obs:      &memObservationRepo{},
		invoices: &memInvoiceRepo{invoices: map[string]*entity.Invoice{}},
	}
	users := &memUserRepo{records: map[string]*entity.User{
		"member-1": {ID: "member-1", Email: "m@example.com", Name: "M", Role: entity.RoleStudent, Status: "active"},
	}}
	tx := &memTxRunner{bookings: f.bookings, aircraft: f.aircraft, invoices: f.invoices}
	f.uc = NewBookingUseCase(f.bookings, f.aircraft, f.auths, f.obs, users, tx, memSettings{})
	return f
}

func (f *bookingFixture) addAircraft(requiresAuth bool) *entity.Aircraft {
	a := &entity.Aircraft{
		ID:                    "ac-1",
		Registration:          "ZK-ABC",
		Model:                 "C172",
		Status:                entity.AircraftStatusActive,
		TachTime:              decimal.RequireFromString("1200.0"),
		HobbsTime:             decimal.RequireFromString("1300.0"),
		HourlyRate:            decimal.RequireFromString("250.00"),
		RequiresAuthorization: requiresAuth,
	}
	f.aircraft.records[a.ID] = a
	return a
}

func (f *bookingFixture) addBooking(flightType string) *entity.Booking {
	b := &entity.Booking{
		ID:         "bk-1",
		AircraftID: "ac-1",
		MemberID:   "member-1",
		StartTime:  time.Now(),
		EndTime:    time.Now().Add(2 * time.Hour),
		FlightType: flightType,
		Status:     entity.BookingStatusConfirmed,
	}
	if flightType == entity.FlightTypeDual {
		b.InstructorID = "instructor-1"
	}
	f.bookings.records[b.ID] = b
	return b
}

func checkOutMeters() dto.CheckOutRequest {
	return dto.CheckOutRequest{
		TachStart:  decimal.RequireFromString("1200.0"),
		HobbsStart: decimal.RequireFromString("1300.0"),
	}
}

func TestCheckOut_SoloWithoutAuthorizationBlocked(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeSolo)

	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	assert.ErrorIs(t, err, domain.ErrAuthorizationRequired)
}

func TestCheckOut_SoloWithApprovedAuthorization(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeSolo)
	f.auths.approved["bk-1"] = &entity.FlightAuthorization{
		ID: "auth-1", BookingID: "bk-1", Status: entity.AuthorizationStatusApproved,
	}

	out, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, out.Status)
	assert.NotNil(t, out.CheckedOutAt)
}

func TestCheckOut_SoloWithOverride(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeSolo)

	_, err := f.uc.RecordOverride(context.Background(), "bk-1", "admin-1", "instructor unavailable, CFI phone approval")
	require.NoError(t, err)

	out, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, out.Status)
	require.NotNil(t, out.Override)
	assert.Equal(t, "admin-1", out.Override.By)
}

func TestCheckOut_DualNeedsNoAuthorization(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeDual)

	out, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, out.Status)
}

func TestCheckOut_GroundingObservationBlocks(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeDual)
	f.obs.open = append(f.obs.open, &entity.Observation{
		ID: "obs-1", AircraftID: "ac-1",
		Severity: entity.ObservationSeverityGrounding,
		Status:   entity.ObservationStatusOpen,
	})

	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCheckOut_CautionObservationDoesNotBlock(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeDual)
	f.obs.open = append(f.obs.open, &entity.Observation{
		ID: "obs-1", AircraftID: "ac-1",
		Severity: entity.ObservationSeverityCaution,
		Status:   entity.ObservationStatusOpen,
	})

	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	assert.NoError(t, err)
}

func TestCheckOut_RetryReturnsCurrentState(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(false)
	f.addBooking(entity.FlightTypePrivate)

	first, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	// A second check-out (crash retry) is a no-op, not an error.
	second, err := f.uc.CheckOut(context.Background(), "bk-1", dto.CheckOutRequest{
		TachStart:  decimal.RequireFromString("9999.9"),
		HobbsStart: decimal.RequireFromString("9999.9"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, second.Status)
	assert.True(t, first.TachStart.Equal(second.TachStart), "retry must not overwrite meters")
}

func TestCheckIn_MetersBelowStartRejected(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(false)
	f.addBooking(entity.FlightTypePrivate)
	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	_, err = f.uc.CheckIn(context.Background(), "bk-1", dto.CheckInRequest{
		TachEnd:  decimal.RequireFromString("1199.0"),
		HobbsEnd: decimal.RequireFromString("1299.0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckIn_CompletesAndAdvancesMeters(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(false)
	f.addBooking(entity.FlightTypePrivate)
	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	out, err := f.uc.CheckIn(context.Background(), "bk-1", dto.CheckInRequest{
		TachEnd:  decimal.RequireFromString("1201.2"),
		HobbsEnd: decimal.RequireFromString("1301.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCompleted, out.Status)
	assert.True(t, out.FlightTime.Equal(decimal.RequireFromString("1.5")))
	assert.Empty(t, out.InvoiceID)

	ac := f.aircraft.records["ac-1"]
	assert.True(t, ac.TachTime.Equal(decimal.RequireFromString("1201.2")))
	assert.True(t, ac.HobbsTime.Equal(decimal.RequireFromString("1301.5")))
}

func TestCheckIn_GeneratesDualFlightInvoice(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(true)
	f.addBooking(entity.FlightTypeDual)
	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	out, err := f.uc.CheckIn(context.Background(), "bk-1", dto.CheckInRequest{
		TachEnd:         decimal.RequireFromString("1201.0"),
		HobbsEnd:        decimal.RequireFromString("1301.2"),
		GenerateInvoice: true,
		InstructorRate:  decimal.RequireFromString("95.00"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.InvoiceID)

	inv := f.invoices.invoices[out.InvoiceID]
	require.NotNil(t, inv)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "member-1", inv.MemberID)
	assert.Equal(t, "bk-1", inv.BookingID)

	// 1.2 h: hire 1.2*250 = 300.00, instructor 1.2*95 = 114.00; 15% tax on
	// each rounded line, totals summed from the rounded values.
	require.Len(t, f.invoices.items, 2)
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("414.00")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.TaxTotal.Equal(decimal.RequireFromString("62.10")), "tax %s", inv.TaxTotal)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("476.10")), "total %s", inv.TotalAmount)
}

func TestCheckIn_ZeroFlightTimeSkipsInvoice(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(false)
	f.addBooking(entity.FlightTypePrivate)
	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	out, err := f.uc.CheckIn(context.Background(), "bk-1", dto.CheckInRequest{
		TachEnd:         decimal.RequireFromString("1200.0"),
		HobbsEnd:        decimal.RequireFromString("1300.0"),
		GenerateInvoice: true,
	})
	require.NoError(t, err)
	assert.Empty(t, out.InvoiceID)
	assert.Empty(t, f.invoices.items)
}

func TestCancel_OnlyConfirmedBookings(t *testing.T) {
	f := newBookingFixture()
	f.addAircraft(false)
	f.addBooking(entity.FlightTypePrivate)

	_, err := f.uc.CheckOut(context.Background(), "bk-1", checkOutMeters())
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), "bk-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
