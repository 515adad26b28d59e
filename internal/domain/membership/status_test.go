package membership_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/membership"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatus_NilRecord(t *testing.T) {
	assert.Equal(t, entity.MembershipStatusNone, membership.Status(nil, 7, time.Now()))
}

func TestStatus_UnpaidWinsOverDates(t *testing.T) {
	now := day(2024, 1, 15)
	m := &entity.Membership{
		ExpiryDate: day(2030, 1, 1), // far future
		FeePaid:    false,
	}
	assert.Equal(t, entity.MembershipStatusUnpaid, membership.Status(m, 7, now))
}

func TestStatus_ActiveOnExpiryDay(t *testing.T) {
	now := day(2024, 6, 1)
	m := &entity.Membership{ExpiryDate: day(2024, 6, 1), FeePaid: true}
	assert.Equal(t, entity.MembershipStatusActive, membership.Status(m, 7, now))
}

func TestStatus_GraceAndExpiredBoundaries(t *testing.T) {
	now := day(2024, 3, 10)

	// expiry = yesterday, grace 7 days -> grace
	m := &entity.Membership{ExpiryDate: now.AddDate(0, 0, -1), FeePaid: true}
	assert.Equal(t, entity.MembershipStatusGrace, membership.Status(m, 7, now))

	// expiry = 8 days ago, same grace -> expired
	m = &entity.Membership{ExpiryDate: now.AddDate(0, 0, -8), FeePaid: true}
	assert.Equal(t, entity.MembershipStatusExpired, membership.Status(m, 7, now))

	// last day of grace still counts
	m = &entity.Membership{ExpiryDate: now.AddDate(0, 0, -7), FeePaid: true}
	assert.Equal(t, entity.MembershipStatusGrace, membership.Status(m, 7, now))
}

func TestStatus_ScenarioFromDashboard(t *testing.T) {
	// expiry 2024-01-01, paid, now 2024-01-15, grace 30 -> grace, 16 days left.
	m := &entity.Membership{ExpiryDate: day(2024, 1, 1), FeePaid: true}
	now := day(2024, 1, 15)

	assert.Equal(t, entity.MembershipStatusGrace, membership.Status(m, 30, now))
	assert.Equal(t, 16, membership.GracePeriodRemaining(m, 30, now))
}

func TestGracePeriodRemaining_ZeroOutsideGrace(t *testing.T) {
	now := day(2024, 1, 15)
	active := &entity.Membership{ExpiryDate: day(2024, 2, 1), FeePaid: true}
	expired := &entity.Membership{ExpiryDate: day(2023, 1, 1), FeePaid: true}

	assert.Equal(t, 0, membership.GracePeriodRemaining(active, 30, now))
	assert.Equal(t, 0, membership.GracePeriodRemaining(expired, 30, now))
	assert.Equal(t, 0, membership.GracePeriodRemaining(nil, 30, now))
}

func TestIsExpiringSoon(t *testing.T) {
	now := day(2024, 5, 1)

	within := &entity.Membership{ExpiryDate: day(2024, 5, 20), FeePaid: true}
	beyond := &entity.Membership{ExpiryDate: day(2024, 7, 1), FeePaid: true}
	past := &entity.Membership{ExpiryDate: day(2024, 4, 1), FeePaid: true}

	assert.True(t, membership.IsExpiringSoon(within, 30, now))
	assert.False(t, membership.IsExpiringSoon(beyond, 30, now))
	assert.False(t, membership.IsExpiringSoon(past, 30, now), "already expired is not 'expiring soon'")
	assert.False(t, membership.IsExpiringSoon(nil, 30, now))
}
