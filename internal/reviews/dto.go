package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelbsfarias/proline-backend/internal/negotiation"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	"github.com/rafaelbsfarias/proline-backend/pkg/types"
)

// VehicleSummary is the vehicle slice every read model carries.
type VehicleSummary struct {
	Plate string `json:"plate"`
	Model string `json:"model"`
}

// PendingRevisionQuote is one row of the partner's "waiting on me" list:
// quotes whose estimated days a specialist contested.
type PendingRevisionQuote struct {
	QuoteID            uuid.UUID      `json:"quote_id"`
	QuoteNumber        string         `json:"quote_number"`
	Vehicle            VehicleSummary `json:"vehicle"`
	ClientName         string         `json:"client_name"`
	SpecialistName     string         `json:"specialist_name,omitempty"`
	Comments           *string        `json:"comments,omitempty"`
	ItemsCount         int            `json:"items_count"`
	RevisionItemsCount int            `json:"revision_items_count"`
	RequestedAt        time.Time      `json:"requested_at"`
	WaitingDays        int            `json:"waiting_days"`
}

// InReviewQuote is one row of the partner's in-review list covering every
// quote still inside the negotiation loop.
type InReviewQuote struct {
	QuoteID          uuid.UUID         `json:"quote_id"`
	QuoteNumber      string            `json:"quote_number"`
	Status           enums.QuoteStatus `json:"status"`
	Vehicle          VehicleSummary    `json:"vehicle"`
	ClientName       string            `json:"client_name"`
	SubmittedAt      time.Time         `json:"submitted_at"`
	WaitingDays      int               `json:"waiting_days"`
	HasTimeRevision  bool              `json:"has_time_revision"`
	UpdateComments   *string           `json:"update_comments,omitempty"`
	RevisionComments *string           `json:"revision_comments,omitempty"`
}

// SpecialistPendingQuote is one row of the specialist's re-review queue:
// resubmitted quotes waiting on a fresh look, oldest wait first.
type SpecialistPendingQuote struct {
	QuoteID       uuid.UUID       `json:"quote_id"`
	QuoteNumber   string          `json:"quote_number"`
	Vehicle       VehicleSummary  `json:"vehicle"`
	ClientName    string          `json:"client_name"`
	PartnerName   string          `json:"partner_name"`
	TotalValue    decimal.Decimal `json:"total_value"`
	UpdatedAt     time.Time       `json:"updated_at"`
	WaitingDays   int             `json:"waiting_days"`
	RevisionCount int             `json:"revision_count"`
}

// RevisionDetail is the single-quote view the partner edits against.
type RevisionDetail struct {
	QuoteID        uuid.UUID                 `json:"quote_id"`
	QuoteNumber    string                    `json:"quote_number"`
	Status         enums.QuoteStatus         `json:"status"`
	TotalValue     decimal.Decimal           `json:"total_value"`
	Vehicle        VehicleSummary            `json:"vehicle"`
	ClientName     string                    `json:"client_name"`
	SpecialistName string                    `json:"specialist_name,omitempty"`
	Comments       *string                   `json:"comments,omitempty"`
	RequestedAt    time.Time                 `json:"requested_at"`
	WaitingDays    int                       `json:"waiting_days"`
	Items          []negotiation.DisplayItem `json:"items"`
}

// RequestTimeRevisionInput carries the specialist's counter-proposal.
type RequestTimeRevisionInput struct {
	Comments    *string                `json:"comments,omitempty"`
	Suggestions types.RevisionRequests `json:"suggestions"`
}

// ResubmitInput carries the partner's resubmission note.
type ResubmitInput struct {
	Comments *string `json:"comments,omitempty"`
}
