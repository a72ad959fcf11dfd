package negotiation

import (
	"context"
	"time"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

const millisPerDay = 86_400_000

// Derive computes the negotiation view for a quote from its stored status
// plus journal lookups. Missing journal events are not errors; every lookup
// degrades to the documented fallback timestamp. Store failures propagate.
func Derive(ctx context.Context, quote models.Quote, journal Journal) (View, error) {
	switch {
	case quote.Status == enums.QuoteStatusTimeRevisionRequested:
		event, err := journal.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionRevisionRequested)
		if err != nil {
			return View{}, err
		}
		ref := quote.CreatedAt
		if event != nil {
			ref = event.CreatedAt
		}
		return View{
			Phase:         enums.NegotiationPhaseAwaitingPartner,
			ReferenceTime: ref,
		}, nil

	case quote.Status == enums.QuoteStatusAdminReview || quote.Status == enums.QuoteStatusPendingAdminApproval:
		event, err := journal.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionPartnerUpdated)
		if err != nil {
			return View{}, err
		}
		// reference priority: partner_updated -> sent_to_admin_at -> created_at
		ref := quote.CreatedAt
		if quote.SentToAdminAt != nil {
			ref = *quote.SentToAdminAt
		}
		if event != nil {
			ref = event.CreatedAt
		}
		return View{
			Phase:                   enums.NegotiationPhaseAwaitingAdmin,
			ReferenceTime:           ref,
			NeedsSpecialistReReview: quote.Status == enums.QuoteStatusAdminReview && event != nil,
		}, nil

	default:
		return View{
			Phase:         enums.NegotiationPhaseClosed,
			ReferenceTime: quote.CreatedAt,
		}, nil
	}
}

// WaitingDays returns whole days elapsed between ref and now, computed as
// the millisecond difference divided by 86,400,000. Partial days round
// toward zero and a negative difference surfaces as-is instead of being
// clamped.
func WaitingDays(now, ref time.Time) int {
	return int(now.Sub(ref).Milliseconds() / millisPerDay)
}
