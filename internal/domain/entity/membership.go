package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derived membership states. Not stored; computed from dates and fee_paid.
const (
	MembershipStatusNone    = "none"
	MembershipStatusUnpaid  = "unpaid"
	MembershipStatusActive  = "active"
	MembershipStatusGrace   = "grace"
	MembershipStatusExpired = "expired"
)

// Membership links a member to a membership type for a period.
type Membership struct {
	ID         string
	MemberID   string
	TypeID     string
	StartDate  time.Time
	ExpiryDate time.Time
	FeePaid    bool
	AutoRenew  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MembershipType defines price and duration for a membership tier.
// Read-only at renewal time unless explicitly changed.
type MembershipType struct {
	ID             string
	Name           string
	Price          decimal.Decimal
	DurationMonths int
	Benefits       []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
