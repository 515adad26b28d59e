package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMembershipRequest body for POST /api/memberships.
type CreateMembershipRequest struct {
	MemberID  string     `json:"member_id"`
	TypeID    string     `json:"type_id"`
	StartDate *time.Time `json:"start_date,omitempty"` // defaults to today
	FeePaid   bool       `json:"fee_paid"`
	AutoRenew bool       `json:"auto_renew"`
}

// RenewMembershipRequest body for POST /api/memberships/:id/renew. TypeID
// switches tier when set; the current type is reused otherwise.
type RenewMembershipRequest struct {
	TypeID string `json:"type_id,omitempty"`
}

// MembershipResponse membership with its derived status.
type MembershipResponse struct {
	ID             string    `json:"id"`
	MemberID       string    `json:"member_id"`
	TypeID         string    `json:"type_id"`
	TypeName       string    `json:"type_name,omitempty"`
	StartDate      time.Time `json:"start_date"`
	ExpiryDate     time.Time `json:"expiry_date"`
	FeePaid        bool      `json:"fee_paid"`
	AutoRenew      bool      `json:"auto_renew"`
	Status         string    `json:"status"`
	ExpiringSoon   bool      `json:"expiring_soon"`
	GraceDaysLeft  int       `json:"grace_days_left"`
	InvoiceID      string    `json:"invoice_id,omitempty"` // renewal fee invoice
}

// CreateMembershipTypeRequest body for POST /api/memberships/types.
type CreateMembershipTypeRequest struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"duration_months"`
	Benefits       []string        `json:"benefits,omitempty"`
}

// MembershipTypeResponse tier in responses.
type MembershipTypeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"duration_months"`
	Benefits       []string        `json:"benefits"`
}
