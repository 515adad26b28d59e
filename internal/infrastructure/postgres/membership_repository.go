package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)
var _ repository.MembershipTypeRepository = (*MembershipTypeRepo)(nil)

// MembershipRepo implements MembershipRepository over PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository builds the adapter. Pass a pool or a tx.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

const membershipColumns = `id, member_id, type_id, start_date, expiry_date, fee_paid, auto_renew, created_at, updated_at`

// Create persists a membership period.
func (r *MembershipRepo) Create(m *entity.Membership) error {
	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.MemberID, m.TypeID, m.StartDate, m.ExpiryDate, m.FeePaid, m.AutoRenew,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// GetByID fetches a membership by ID, (nil, nil) when missing.
func (r *MembershipRepo) GetByID(id string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get membership by id")
}

// GetCurrentByMember returns the membership with the latest expiry for the
// member, (nil, nil) when they have none.
func (r *MembershipRepo) GetCurrentByMember(memberID string) (*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships WHERE member_id = $1
		ORDER BY expiry_date DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, memberID), "get current membership")
}

// Update writes the mutable membership fields.
func (r *MembershipRepo) Update(m *entity.Membership) error {
	query := `
		UPDATE memberships SET type_id = $2, start_date = $3, expiry_date = $4, fee_paid = $5, auto_renew = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TypeID, m.StartDate, m.ExpiryDate, m.FeePaid, m.AutoRenew, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	return nil
}

// ListExpiringBetween returns paid memberships expiring in [from, to].
func (r *MembershipRepo) ListExpiringBetween(from, to time.Time) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE fee_paid = TRUE AND expiry_date BETWEEN $1 AND $2
		ORDER BY expiry_date`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.MemberID, &m.TypeID, &m.StartDate, &m.ExpiryDate, &m.FeePaid, &m.AutoRenew, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MembershipRepo) scanOne(row pgx.Row, op string) (*entity.Membership, error) {
	var m entity.Membership
	err := row.Scan(&m.ID, &m.MemberID, &m.TypeID, &m.StartDate, &m.ExpiryDate, &m.FeePaid, &m.AutoRenew, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// MembershipTypeRepo implements MembershipTypeRepository over PostgreSQL.
type MembershipTypeRepo struct {
	q Querier
}

// NewMembershipTypeRepository builds the adapter. Pass a pool or a tx.
func NewMembershipTypeRepository(q Querier) *MembershipTypeRepo {
	return &MembershipTypeRepo{q: q}
}

// Create persists a membership tier.
func (r *MembershipTypeRepo) Create(t *entity.MembershipType) error {
	query := `
		INSERT INTO membership_types (id, name, price, duration_months, benefits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Price, t.DurationMonths, t.Benefits, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership type: %w", err)
	}
	return nil
}

// GetByID fetches a tier by ID, (nil, nil) when missing.
func (r *MembershipTypeRepo) GetByID(id string) (*entity.MembershipType, error) {
	query := `SELECT id, name, price, duration_months, benefits, created_at, updated_at FROM membership_types WHERE id = $1`
	var t entity.MembershipType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Price, &t.DurationMonths, &t.Benefits, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership type: %w", err)
	}
	return &t, nil
}

// List returns all tiers by name.
func (r *MembershipTypeRepo) List() ([]*entity.MembershipType, error) {
	query := `SELECT id, name, price, duration_months, benefits, created_at, updated_at FROM membership_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list membership types: %w", err)
	}
	defer rows.Close()
	var list []*entity.MembershipType
	for rows.Next() {
		var t entity.MembershipType
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.DurationMonths, &t.Benefits, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
