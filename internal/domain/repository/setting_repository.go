package repository

import "github.com/flightdesk/flightdesk-api/internal/domain/entity"

// SettingRepository persistence port for configuration rows.
type SettingRepository interface {
	Get(category, key string) (*entity.Setting, error)
	ListByCategory(category string) ([]*entity.Setting, error)
	Upsert(s *entity.Setting) error
}
