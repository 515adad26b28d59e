package entity

import "time"

// Setting is one typed configuration row, addressed by category and key.
// Values are stored as text; the settings use case parses them on read.
type Setting struct {
	ID        string
	Category  string // e.g. "billing", "membership"
	Key       string // e.g. "invoice_due_days", "grace_period_days"
	Value     string
	UpdatedAt time.Time
}
