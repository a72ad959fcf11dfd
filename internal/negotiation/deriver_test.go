package negotiation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

type stubJournal struct {
	events map[enums.ReviewAction]*models.QuoteTimeReviewEvent
	counts map[enums.ReviewAction]int64
	err    error
}

func (s *stubJournal) LatestReviewEvent(ctx context.Context, quoteID uuid.UUID, action enums.ReviewAction) (*models.QuoteTimeReviewEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events[action], nil
}

func (s *stubJournal) CountReviewEvents(ctx context.Context, quoteID uuid.UUID, actions ...enums.ReviewAction) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var total int64
	for _, action := range actions {
		total += s.counts[action]
	}
	return total, nil
}

func eventAt(action enums.ReviewAction, at time.Time) *models.QuoteTimeReviewEvent {
	return &models.QuoteTimeReviewEvent{
		ID:        uuid.New(),
		Action:    action,
		CreatedAt: at,
	}
}

func TestDeriveAwaitingPartnerUsesRevisionEventTimestamp(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	requested := created.Add(48 * time.Hour)
	quote := models.Quote{
		ID:        uuid.New(),
		Status:    enums.QuoteStatusTimeRevisionRequested,
		CreatedAt: created,
	}
	journal := &stubJournal{events: map[enums.ReviewAction]*models.QuoteTimeReviewEvent{
		enums.ReviewActionRevisionRequested: eventAt(enums.ReviewActionRevisionRequested, requested),
	}}

	view, err := Derive(context.Background(), quote, journal)
	require.NoError(t, err)
	assert.Equal(t, enums.NegotiationPhaseAwaitingPartner, view.Phase)
	assert.Equal(t, requested, view.ReferenceTime)
	assert.False(t, view.NeedsSpecialistReReview)
}

func TestDeriveAwaitingPartnerFallsBackToQuoteCreatedAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	quote := models.Quote{
		ID:        uuid.New(),
		Status:    enums.QuoteStatusTimeRevisionRequested,
		CreatedAt: created,
	}
	journal := &stubJournal{}

	view, err := Derive(context.Background(), quote, journal)
	require.NoError(t, err)
	assert.Equal(t, enums.NegotiationPhaseAwaitingPartner, view.Phase)
	assert.Equal(t, created, view.ReferenceTime)
}

func TestDeriveAwaitingAdminReferencePriority(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sent := created.Add(2 * time.Hour)
	updated := created.Add(72 * time.Hour)

	cases := []struct {
		name    string
		sentAt  *time.Time
		updated *models.QuoteTimeReviewEvent
		want    time.Time
	}{
		{
			name:    "partner_updated wins",
			sentAt:  &sent,
			updated: eventAt(enums.ReviewActionPartnerUpdated, updated),
			want:    updated,
		},
		{
			name:   "sent_to_admin_at when no partner update",
			sentAt: &sent,
			want:   sent,
		},
		{
			name: "created_at as last resort",
			want: created,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := models.Quote{
				ID:            uuid.New(),
				Status:        enums.QuoteStatusAdminReview,
				CreatedAt:     created,
				SentToAdminAt: tc.sentAt,
			}
			journal := &stubJournal{events: map[enums.ReviewAction]*models.QuoteTimeReviewEvent{}}
			if tc.updated != nil {
				journal.events[enums.ReviewActionPartnerUpdated] = tc.updated
			}

			view, err := Derive(context.Background(), quote, journal)
			require.NoError(t, err)
			assert.Equal(t, enums.NegotiationPhaseAwaitingAdmin, view.Phase)
			assert.Equal(t, tc.want, view.ReferenceTime)
		})
	}
}

func TestDeriveReReviewFlagRequiresPartnerUpdate(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	withoutUpdate := models.Quote{ID: uuid.New(), Status: enums.QuoteStatusAdminReview, CreatedAt: created}
	view, err := Derive(context.Background(), withoutUpdate, &stubJournal{})
	require.NoError(t, err)
	assert.False(t, view.NeedsSpecialistReReview, "admin_review reached by original submission needs no re-review")

	journal := &stubJournal{events: map[enums.ReviewAction]*models.QuoteTimeReviewEvent{
		enums.ReviewActionPartnerUpdated: eventAt(enums.ReviewActionPartnerUpdated, created.Add(time.Hour)),
	}}
	view, err = Derive(context.Background(), withoutUpdate, journal)
	require.NoError(t, err)
	assert.True(t, view.NeedsSpecialistReReview)

	pending := models.Quote{ID: uuid.New(), Status: enums.QuoteStatusPendingAdminApproval, CreatedAt: created}
	view, err = Derive(context.Background(), pending, journal)
	require.NoError(t, err)
	assert.False(t, view.NeedsSpecialistReReview, "flag only applies to admin_review")
}

func TestDeriveClosedStatuses(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, status := range []enums.QuoteStatus{
		enums.QuoteStatusApproved,
		enums.QuoteStatusRejected,
		enums.QuoteStatusExecuting,
	} {
		quote := models.Quote{ID: uuid.New(), Status: status, CreatedAt: created}
		view, err := Derive(context.Background(), quote, &stubJournal{})
		require.NoError(t, err)
		assert.Equal(t, enums.NegotiationPhaseClosed, view.Phase)
		assert.Equal(t, created, view.ReferenceTime)
	}
}

func TestDerivePropagatesStoreFailures(t *testing.T) {
	boom := errors.New("store down")
	quote := models.Quote{ID: uuid.New(), Status: enums.QuoteStatusAdminReview}
	_, err := Derive(context.Background(), quote, &stubJournal{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestWaitingDaysBoundaries(t *testing.T) {
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exactly one day", ref.Add(24 * time.Hour), 1},
		{"one day minus 1ms", ref.Add(24*time.Hour - time.Millisecond), 0},
		{"one day plus 1ms", ref.Add(24*time.Hour + time.Millisecond), 1},
		{"36 hours", ref.Add(36 * time.Hour), 1},
		{"same instant", ref, 0},
		{"future reference surfaces negative", ref.Add(-30 * time.Hour), -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WaitingDays(tc.now, ref))
		})
	}
}
