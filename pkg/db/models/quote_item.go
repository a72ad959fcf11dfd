package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteItem is one line of a quote with its own estimated completion days.
// The negotiation engine never edits items; suggestions live on the journal.
type QuoteItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID       uuid.UUID `gorm:"column:quote_id;type:uuid;not null"`
	Description   string    `gorm:"column:description;not null"`
	EstimatedDays int       `gorm:"column:estimated_days;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
