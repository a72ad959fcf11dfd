package negotiation

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

// Journal reads the append-only quote_time_review_events log. The newest
// event per (quote, action) pair is authoritative; when two events share a
// created_at the highest id wins, which keeps lookups deterministic.
type Journal interface {
	// LatestReviewEvent returns the most recent event of the given action
	// for the quote, or (nil, nil) when none exists. Absence is a normal
	// outcome, never an error.
	LatestReviewEvent(ctx context.Context, quoteID uuid.UUID, action enums.ReviewAction) (*models.QuoteTimeReviewEvent, error)

	// CountReviewEvents counts the journal entries for the quote across the
	// supplied actions.
	CountReviewEvents(ctx context.Context, quoteID uuid.UUID, actions ...enums.ReviewAction) (int64, error)
}
