package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/api/middleware"
	"github.com/rafaelbsfarias/proline-backend/api/responses"
	"github.com/rafaelbsfarias/proline-backend/api/validators"
	"github.com/rafaelbsfarias/proline-backend/internal/reviews"
	pkgerrors "github.com/rafaelbsfarias/proline-backend/pkg/errors"
	"github.com/rafaelbsfarias/proline-backend/pkg/logger"
	"github.com/rafaelbsfarias/proline-backend/pkg/types"
)

const maxCommentLength = 2000

func sanitizeComments(comments *string) *string {
	if comments == nil {
		return nil
	}
	cleaned := validators.SanitizeString(*comments, maxCommentLength)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

type requestTimeRevisionPayload struct {
	Comments    *string                     `json:"comments"`
	Suggestions map[string]revisionItemDays `json:"suggestions" validate:"required,min=1"`
}

type revisionItemDays struct {
	SuggestedDays int    `json:"suggested_days" validate:"required,gt=0"`
	Reason        string `json:"reason"`
}

type resubmitQuotePayload struct {
	Comments *string `json:"comments"`
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}

func quoteIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "quoteId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id")
	}
	return id, nil
}

// PartnerPendingRevisions lists the partner's quotes whose estimated days a
// specialist contested.
func PartnerPendingRevisions(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		partnerID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.PartnerPendingRevisions(ctx, partnerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PartnerInReviewQuotes lists every quote of the partner still inside the
// review loop.
func PartnerInReviewQuotes(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		partnerID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.PartnerInReview(ctx, partnerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PartnerRevisionDetail returns one contested quote with the specialist's
// per-item suggestions merged in.
func PartnerRevisionDetail(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		partnerID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		quoteID, err := quoteIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.PartnerRevisionDetail(ctx, partnerID, quoteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// PartnerResubmitQuote sends a contested quote back to review.
func PartnerResubmitQuote(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		partnerID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		quoteID, err := quoteIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload resubmitQuotePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.ResubmitQuote(ctx, partnerID, quoteID, reviews.ResubmitInput{
			Comments: sanitizeComments(payload.Comments),
		}); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "resubmitted"})
	}
}

// SpecialistPendingReviews lists resubmitted quotes waiting on the
// specialist, oldest wait first.
func SpecialistPendingReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		specialistID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.SpecialistPendingReview(ctx, specialistID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SpecialistRequestTimeRevision contests a quote's estimated days with
// per-item suggestions.
func SpecialistRequestTimeRevision(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		specialistID, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		quoteID, err := quoteIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload requestTimeRevisionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		suggestions := make(types.RevisionRequests, len(payload.Suggestions))
		for itemID, suggestion := range payload.Suggestions {
			suggestions[itemID] = types.ItemRevision{
				SuggestedDays: suggestion.SuggestedDays,
				Reason:        suggestion.Reason,
			}
		}

		if err := svc.RequestTimeRevision(ctx, specialistID, quoteID, reviews.RequestTimeRevisionInput{
			Comments:    sanitizeComments(payload.Comments),
			Suggestions: suggestions,
		}); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "revision_requested"})
	}
}
