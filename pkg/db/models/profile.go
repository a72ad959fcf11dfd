package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

// Profile resolves display names for clients, partners and specialists.
type Profile struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName  string         `gorm:"column:full_name;not null"`
	Role      enums.UserRole `gorm:"column:role;type:user_role;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
