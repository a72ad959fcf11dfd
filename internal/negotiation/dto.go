package negotiation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

// View is the derived position of a quote inside the negotiation loop.
// It is computed fresh on every read; nothing here is persisted.
type View struct {
	Phase                   enums.NegotiationPhase `json:"phase"`
	ReferenceTime           time.Time              `json:"reference_time"`
	NeedsSpecialistReReview bool                   `json:"needs_specialist_re_review"`
}

// DisplayItem is a quote line item merged with the latest specialist
// suggestion for it, shaped for the partner revision screen.
type DisplayItem struct {
	ID               uuid.UUID `json:"id"`
	Description      string    `json:"description"`
	EstimatedDays    int       `json:"estimated_days"`
	HasSuggestion    bool      `json:"has_suggestion"`
	SuggestedDays    *int      `json:"suggested_days,omitempty"`
	SuggestionReason *string   `json:"suggestion_reason,omitempty"`
}
