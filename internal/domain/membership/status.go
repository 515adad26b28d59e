// Package membership classifies membership records into derived states.
// The status is never stored; it is computed from the record, the grace
// period setting and the clock, so callers always see a consistent view.
package membership

import (
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// Status derives the membership state at the given instant.
//
// Payment gates everything: an unpaid fee yields "unpaid" even when the
// expiry date is far in the future. Otherwise the record is active until
// expiry, in grace for graceDays after expiry, and expired beyond that.
func Status(m *entity.Membership, graceDays int, now time.Time) string {
	if m == nil {
		return entity.MembershipStatusNone
	}
	if !m.FeePaid {
		return entity.MembershipStatusUnpaid
	}
	if !now.After(m.ExpiryDate) {
		return entity.MembershipStatusActive
	}
	graceEnd := m.ExpiryDate.AddDate(0, 0, graceDays)
	if !now.After(graceEnd) {
		return entity.MembershipStatusGrace
	}
	return entity.MembershipStatusExpired
}

// IsExpiringSoon reports whether the membership expires within windowDays
// from now. Drives UI warning banners and the reminder email only; it is not
// a contract with external systems.
func IsExpiringSoon(m *entity.Membership, windowDays int, now time.Time) bool {
	if m == nil || now.After(m.ExpiryDate) {
		return false
	}
	return !m.ExpiryDate.After(now.AddDate(0, 0, windowDays))
}

// GracePeriodRemaining returns the whole days of grace left at now, zero when
// the record is not in its grace window.
func GracePeriodRemaining(m *entity.Membership, graceDays int, now time.Time) int {
	if Status(m, graceDays, now) != entity.MembershipStatusGrace {
		return 0
	}
	graceEnd := m.ExpiryDate.AddDate(0, 0, graceDays)
	return int(graceEnd.Sub(now).Hours() / 24)
}
