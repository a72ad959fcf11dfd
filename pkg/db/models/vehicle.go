package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle belongs to a client and is reached from a quote through its
// service order.
type Vehicle struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null"`
	Plate     string    `gorm:"column:plate;not null"`
	Model     string    `gorm:"column:model;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
