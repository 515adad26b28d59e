package dto

// SettingResponse one configuration row.
type SettingResponse struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// UpsertSettingRequest body for PUT /api/settings.
type UpsertSettingRequest struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}
