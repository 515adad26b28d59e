package flightauth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// fakeAuthRepo is an in-memory AuthorizationRepository that counts writes.
type fakeAuthRepo struct {
	mu      sync.Mutex
	records map[string]*entity.FlightAuthorization
	updates int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{records: make(map[string]*entity.FlightAuthorization)}
}

func (r *fakeAuthRepo) Create(a *entity.FlightAuthorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeAuthRepo) GetByID(id string) (*entity.FlightAuthorization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAuthRepo) GetApprovedByBooking(string) (*entity.FlightAuthorization, error) {
	return nil, nil
}

func (r *fakeAuthRepo) ListByStudent(string, int, int) ([]*entity.FlightAuthorization, error) {
	return nil, nil
}

func (r *fakeAuthRepo) ListPending(int, int) ([]*entity.FlightAuthorization, error) {
	return nil, nil
}

func (r *fakeAuthRepo) Update(a *entity.FlightAuthorization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.records[a.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeAuthRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

func (r *fakeAuthRepo) get(id string) *entity.FlightAuthorization {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id]
}

// fakeBookingRepo serves one booking, enough for ownership checks.
type fakeBookingRepo struct {
	booking *entity.Booking
}

func (r *fakeBookingRepo) Create(*entity.Booking) error { return nil }
func (r *fakeBookingRepo) GetByID(id string) (*entity.Booking, error) {
	if r.booking != nil && r.booking.ID == id {
		cp := *r.booking
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeBookingRepo) ListByMember(string, int, int) ([]*entity.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) ListBetween(time.Time, time.Time) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) Update(*entity.Booking) error { return nil }

type fakeUserRepo struct{}

func (fakeUserRepo) Create(*entity.User) error { return nil }
func (fakeUserRepo) GetByID(string) (*entity.User, error) { return nil, nil }
func (fakeUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (fakeUserRepo) Update(*entity.User) error { return nil }

func newDraftFixture(t *testing.T) (*DraftSaver, *fakeAuthRepo, string) {
	t.Helper()
	authRepo := newFakeAuthRepo()
	bookingRepo := &fakeBookingRepo{booking: &entity.Booking{
		ID:       "booking-1",
		MemberID: "student-1",
	}}
	uc := NewAuthorizationUseCase(authRepo, bookingRepo, fakeUserRepo{}, nil)
	a := &entity.FlightAuthorization{
		ID:        "auth-1",
		BookingID: "booking-1",
		StudentID: "student-1",
		Status:    entity.AuthorizationStatusDraft,
	}
	require.NoError(t, authRepo.Create(a))
	return NewDraftSaver(uc, 30*time.Millisecond), authRepo, a.ID
}

func TestDraftSaver_DebouncesToSingleWrite(t *testing.T) {
	saver, repo, id := newDraftFixture(t)

	// Three rapid edits within the window must collapse into one save with
	// the newest payload.
	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", FuelState: "1/4"})
	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", FuelState: "1/2"})
	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", FuelState: "full"})

	require.Eventually(t, func() bool { return repo.updateCount() == 1 },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, "full", repo.get(id).FuelState)

	// No further writes after the save.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, repo.updateCount())
}

func TestDraftSaver_EditDuringSaveRunsAnotherCycle(t *testing.T) {
	saver, repo, id := newDraftFixture(t)

	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", Weather: "CAVOK"})
	require.Eventually(t, func() bool { return repo.updateCount() >= 1 },
		time.Second, 5*time.Millisecond)

	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", Weather: "few 2500"})
	require.Eventually(t, func() bool { return repo.updateCount() >= 2 },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, "few 2500", repo.get(id).Weather)
}

func TestDraftSaver_FlushRunsImmediately(t *testing.T) {
	saver, repo, id := newDraftFixture(t)

	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", OilState: "6 qt"})
	saver.Flush(id)

	assert.Equal(t, 1, repo.updateCount())
	assert.Equal(t, "6 qt", repo.get(id).OilState)
}

func TestDraftSaver_IndependentTimersPerRecord(t *testing.T) {
	saver, repo, id := newDraftFixture(t)

	other := &entity.FlightAuthorization{
		ID:        "auth-2",
		BookingID: "booking-1",
		StudentID: "student-1",
		Status:    entity.AuthorizationStatusDraft,
	}
	require.NoError(t, repo.Create(other))

	saver.Schedule(id, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", FuelState: "full"})
	saver.Schedule(other.ID, "student-1", dto.AuthorizationDraftRequest{BookingID: "booking-1", FuelState: "1/2"})

	require.Eventually(t, func() bool { return repo.updateCount() == 2 },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, "full", repo.get(id).FuelState)
	assert.Equal(t, "1/2", repo.get(other.ID).FuelState)
}
