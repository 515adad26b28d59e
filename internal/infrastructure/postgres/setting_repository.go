package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implements SettingRepository over PostgreSQL.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository builds the adapter. Pass a pool or a tx.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get fetches one setting by category and key, (nil, nil) when missing.
func (r *SettingRepo) Get(category, key string) (*entity.Setting, error) {
	query := `SELECT id, category, key, value, updated_at FROM settings WHERE category = $1 AND key = $2`
	var s entity.Setting
	err := r.q.QueryRow(context.Background(), query, category, key).Scan(
		&s.ID, &s.Category, &s.Key, &s.Value, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// ListByCategory returns all settings in a category ordered by key.
func (r *SettingRepo) ListByCategory(category string) ([]*entity.Setting, error) {
	query := `SELECT id, category, key, value, updated_at FROM settings WHERE category = $1 ORDER BY key`
	rows, err := r.q.Query(context.Background(), query, category)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		var s entity.Setting
		if err := rows.Scan(&s.ID, &s.Category, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Upsert writes the value, inserting the row on first use of the key.
func (r *SettingRepo) Upsert(s *entity.Setting) error {
	query := `
		INSERT INTO settings (id, category, key, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, s.ID, s.Category, s.Key, s.Value, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
