package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOrder ties a quote to the vehicle it was produced for.
type ServiceOrder struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID uuid.UUID `gorm:"column:vehicle_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
