package negotiation

import (
	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/types"
)

// MergeSuggestions combines a quote's line items with the per-item
// suggestions carried by the latest revision_requested event. A nil event
// yields every item with HasSuggestion=false, which is the normal shape for
// quotes that were never contested. Merging is pure and idempotent.
func MergeSuggestions(items []models.QuoteItem, latest *models.QuoteTimeReviewEvent) []DisplayItem {
	var requests types.RevisionRequests
	if latest != nil {
		requests = latest.RevisionRequests
	}

	out := make([]DisplayItem, 0, len(items))
	for _, item := range items {
		display := DisplayItem{
			ID:            item.ID,
			Description:   item.Description,
			EstimatedDays: item.EstimatedDays,
		}
		if suggestion, ok := requests[item.ID.String()]; ok {
			days := suggestion.SuggestedDays
			reason := suggestion.Reason
			display.HasSuggestion = true
			display.SuggestedDays = &days
			display.SuggestionReason = &reason
		}
		out = append(out, display)
	}
	return out
}
