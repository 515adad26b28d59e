package usecase

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
	"github.com/flightdesk/flightdesk-api/internal/domain"
	"github.com/flightdesk/flightdesk-api/internal/domain/entity"
	"github.com/flightdesk/flightdesk-api/internal/domain/repository"
)

// SettingsService typed lookups over the settings rows. Missing rows and
// parse failures fall back to the caller's default, so reads never fail.
type SettingsService struct {
	repo repository.SettingRepository
}

// NewSettingsService builds the service.
func NewSettingsService(repo repository.SettingRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetString returns the setting value or def when absent.
func (s *SettingsService) GetString(category, key, def string) string {
	row, err := s.repo.Get(category, key)
	if err != nil || row == nil {
		return def
	}
	return row.Value
}

// GetInt returns the setting parsed as int, or def.
func (s *SettingsService) GetInt(category, key string, def int) int {
	row, err := s.repo.Get(category, key)
	if err != nil || row == nil {
		return def
	}
	n, err := strconv.Atoi(row.Value)
	if err != nil {
		return def
	}
	return n
}

// GetBool returns the setting parsed as bool, or def.
func (s *SettingsService) GetBool(category, key string, def bool) bool {
	row, err := s.repo.Get(category, key)
	if err != nil || row == nil {
		return def
	}
	b, err := strconv.ParseBool(row.Value)
	if err != nil {
		return def
	}
	return b
}

// ListByCategory returns the rows of one category for the admin screen.
func (s *SettingsService) ListByCategory(category string) ([]*dto.SettingResponse, error) {
	rows, err := s.repo.ListByCategory(category)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SettingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.SettingResponse{Category: r.Category, Key: r.Key, Value: r.Value})
	}
	return out, nil
}

// Upsert writes one setting row.
func (s *SettingsService) Upsert(in dto.UpsertSettingRequest) (*dto.SettingResponse, error) {
	if in.Category == "" || in.Key == "" {
		return nil, domain.ErrInvalidInput
	}
	row := &entity.Setting{
		ID:        uuid.New().String(),
		Category:  in.Category,
		Key:       in.Key,
		Value:     in.Value,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Upsert(row); err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Category: row.Category, Key: row.Key, Value: row.Value}, nil
}
