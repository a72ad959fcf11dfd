package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientSpecialist assigns a specialist to a client. A specialist may only
// see quotes whose vehicle belongs to one of their assigned clients.
type ClientSpecialist struct {
	ClientID     uuid.UUID `gorm:"column:client_id;type:uuid;primaryKey"`
	SpecialistID uuid.UUID `gorm:"column:specialist_id;type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides gorm's pluralization for the join table.
func (ClientSpecialist) TableName() string {
	return "client_specialists"
}
