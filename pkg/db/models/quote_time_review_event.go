package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	"github.com/rafaelbsfarias/proline-backend/pkg/types"
)

// QuoteTimeReviewEvent is one entry of the append-only negotiation journal.
// Rows are inserted exactly once per negotiation action and never updated or
// deleted; SpecialistID and RevisionRequests are populated only for
// revision_requested events.
type QuoteTimeReviewEvent struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID          uuid.UUID              `gorm:"column:quote_id;type:uuid;not null"`
	Action           enums.ReviewAction     `gorm:"column:action;type:review_action;not null"`
	Comments         *string                `gorm:"column:comments"`
	SpecialistID     *uuid.UUID             `gorm:"column:specialist_id;type:uuid"`
	RevisionRequests types.RevisionRequests `gorm:"column:revision_requests;type:jsonb;serializer:json"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
}
