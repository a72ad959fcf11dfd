package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

// Quote is a partner's priced proposal for the work on a service order.
// Status transitions happen only through the negotiation mutation entry
// points; the current negotiation phase is never stored here.
type Quote struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PartnerID      uuid.UUID         `gorm:"column:partner_id;type:uuid;not null"`
	ServiceOrderID uuid.UUID         `gorm:"column:service_order_id;type:uuid;not null"`
	Status         enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'pending_admin_approval'"`
	TotalValue     decimal.Decimal   `gorm:"column:total_value;type:numeric(12,2);not null"`
	SentToAdminAt  *time.Time        `gorm:"column:sent_to_admin_at"`
	Items          []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// Number is the human-facing quote number: the upper-cased first 8 hex
// characters of the id.
func (q Quote) Number() string {
	compact := strings.ReplaceAll(q.ID.String(), "-", "")
	if len(compact) < 8 {
		return strings.ToUpper(compact)
	}
	return strings.ToUpper(compact[:8])
}
