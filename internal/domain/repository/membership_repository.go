package repository

import (
	"time"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
)

// MembershipRepository persistence port for memberships.
type MembershipRepository interface {
	Create(m *entity.Membership) error
	GetByID(id string) (*entity.Membership, error)
	// GetCurrentByMember returns the membership with the latest expiry for the
	// member, or nil when they have none.
	GetCurrentByMember(memberID string) (*entity.Membership, error)
	Update(m *entity.Membership) error
	// ListExpiringBetween returns paid memberships whose expiry falls in
	// [from, to], for the reminder sweep.
	ListExpiringBetween(from, to time.Time) ([]*entity.Membership, error)
}

// MembershipTypeRepository persistence port for membership tiers.
type MembershipTypeRepository interface {
	Create(t *entity.MembershipType) error
	GetByID(id string) (*entity.MembershipType, error)
	List() ([]*entity.MembershipType, error)
}
