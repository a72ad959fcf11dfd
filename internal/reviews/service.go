package reviews

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelbsfarias/proline-backend/internal/negotiation"
	"github.com/rafaelbsfarias/proline-backend/internal/quotes"
	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	pkgerrors "github.com/rafaelbsfarias/proline-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the three role read models and the two negotiation
// mutations.
type Service interface {
	PartnerPendingRevisions(ctx context.Context, partnerID uuid.UUID) (*BatchResult[PendingRevisionQuote], error)
	PartnerInReview(ctx context.Context, partnerID uuid.UUID) (*BatchResult[InReviewQuote], error)
	SpecialistPendingReview(ctx context.Context, specialistID uuid.UUID) (*BatchResult[SpecialistPendingQuote], error)
	PartnerRevisionDetail(ctx context.Context, partnerID, quoteID uuid.UUID) (*RevisionDetail, error)
	RequestTimeRevision(ctx context.Context, specialistID, quoteID uuid.UUID, input RequestTimeRevisionInput) error
	ResubmitQuote(ctx context.Context, partnerID, quoteID uuid.UUID, input ResubmitInput) error
}

// Config tunes the service; zero values fall back to sane defaults.
type Config struct {
	Now                func() time.Time
	ResolveConcurrency int
}

type service struct {
	repo        quotes.Repository
	tx          txRunner
	now         func() time.Time
	concurrency int
}

// NewService builds a reviews service with the required dependencies.
func NewService(repo quotes.Repository, tx txRunner, cfg Config) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	concurrency := cfg.ResolveConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	return &service{
		repo:        repo,
		tx:          tx,
		now:         now,
		concurrency: concurrency,
	}, nil
}

func (s *service) PartnerPendingRevisions(ctx context.Context, partnerID uuid.UUID) (*BatchResult[PendingRevisionQuote], error) {
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id required")
	}

	scoped, err := s.repo.ListQuotes(ctx, quotes.Filter{
		PartnerID: &partnerID,
		Statuses:  []enums.QuoteStatus{enums.QuoteStatusTimeRevisionRequested},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending revision quotes")
	}

	now := s.now()
	return resolveQuotes(ctx, scoped, s.concurrency, func(ctx context.Context, quote models.Quote) resolveOutcome[PendingRevisionQuote] {
		vehicle, clientName, dropReason := s.resolveVehicleAndClient(ctx, quote)
		if dropReason != nil {
			return dropOutcome[PendingRevisionQuote](quote.ID, *dropReason)
		}

		event, err := s.repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionRevisionRequested)
		if err != nil {
			return dropOutcome[PendingRevisionQuote](quote.ID, DropStoreFailure)
		}
		if event == nil {
			// status says a revision is pending but the journal disagrees;
			// inconsistent rows are filtered, not defaulted
			return dropOutcome[PendingRevisionQuote](quote.ID, DropRevisionEventAbsent)
		}

		items, err := s.repo.ListQuoteItems(ctx, quote.ID)
		if err != nil {
			return dropOutcome[PendingRevisionQuote](quote.ID, DropStoreFailure)
		}

		specialistName := ""
		if event.SpecialistID != nil {
			if profile, err := s.repo.GetProfile(ctx, *event.SpecialistID); err == nil {
				specialistName = profile.FullName
			}
		}

		return keepOutcome(PendingRevisionQuote{
			QuoteID:            quote.ID,
			QuoteNumber:        quote.Number(),
			Vehicle:            VehicleSummary{Plate: vehicle.Plate, Model: vehicle.Model},
			ClientName:         clientName,
			SpecialistName:     specialistName,
			Comments:           event.Comments,
			ItemsCount:         len(items),
			RevisionItemsCount: len(event.RevisionRequests),
			RequestedAt:        event.CreatedAt,
			WaitingDays:        negotiation.WaitingDays(now, event.CreatedAt),
		})
	})
}

func (s *service) PartnerInReview(ctx context.Context, partnerID uuid.UUID) (*BatchResult[InReviewQuote], error) {
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id required")
	}

	scoped, err := s.repo.ListQuotes(ctx, quotes.Filter{
		PartnerID: &partnerID,
		Statuses: []enums.QuoteStatus{
			enums.QuoteStatusAdminReview,
			enums.QuoteStatusPendingAdminApproval,
			enums.QuoteStatusTimeRevisionRequested,
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list in-review quotes")
	}

	now := s.now()
	return resolveQuotes(ctx, scoped, s.concurrency, func(ctx context.Context, quote models.Quote) resolveOutcome[InReviewQuote] {
		vehicle, clientName, dropReason := s.resolveVehicleAndClient(ctx, quote)
		if dropReason != nil {
			return dropOutcome[InReviewQuote](quote.ID, *dropReason)
		}

		view, err := negotiation.Derive(ctx, quote, s.repo)
		if err != nil {
			return dropOutcome[InReviewQuote](quote.ID, DropStoreFailure)
		}

		row := InReviewQuote{
			QuoteID:         quote.ID,
			QuoteNumber:     quote.Number(),
			Status:          quote.Status,
			Vehicle:         VehicleSummary{Plate: vehicle.Plate, Model: vehicle.Model},
			ClientName:      clientName,
			SubmittedAt:     view.ReferenceTime,
			WaitingDays:     negotiation.WaitingDays(now, view.ReferenceTime),
			HasTimeRevision: quote.Status == enums.QuoteStatusTimeRevisionRequested,
		}

		if updated, err := s.repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionPartnerUpdated); err == nil && updated != nil {
			row.UpdateComments = updated.Comments
		}
		if row.HasTimeRevision {
			if revision, err := s.repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionRevisionRequested); err == nil && revision != nil {
				row.RevisionComments = revision.Comments
			}
		}
		return keepOutcome(row)
	})
}

func (s *service) SpecialistPendingReview(ctx context.Context, specialistID uuid.UUID) (*BatchResult[SpecialistPendingQuote], error) {
	if specialistID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "specialist id required")
	}

	clientIDs, err := s.repo.ListClientIDsForSpecialist(ctx, specialistID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned clients")
	}
	assigned := make(map[uuid.UUID]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		assigned[id] = struct{}{}
	}

	scoped, err := s.repo.ListQuotes(ctx, quotes.Filter{
		Statuses: []enums.QuoteStatus{enums.QuoteStatusAdminReview},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admin-review quotes")
	}

	now := s.now()
	result, err := resolveQuotes(ctx, scoped, s.concurrency, func(ctx context.Context, quote models.Quote) resolveOutcome[SpecialistPendingQuote] {
		vehicle, err := s.repo.GetVehicleByServiceOrder(ctx, quote.ServiceOrderID)
		if err != nil {
			return dropOutcome[SpecialistPendingQuote](quote.ID, DropVehicleUnresolved)
		}
		if _, ok := assigned[vehicle.ClientID]; !ok {
			// out of this specialist's scope, not a data problem
			return skipOutcome[SpecialistPendingQuote]()
		}

		updated, err := s.repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionPartnerUpdated)
		if err != nil {
			return dropOutcome[SpecialistPendingQuote](quote.ID, DropStoreFailure)
		}
		if updated == nil {
			// admin_review reached by the original submission; nothing to
			// re-review
			return skipOutcome[SpecialistPendingQuote]()
		}

		client, err := s.repo.GetProfile(ctx, vehicle.ClientID)
		if err != nil {
			return dropOutcome[SpecialistPendingQuote](quote.ID, DropClientUnresolved)
		}

		partnerName := ""
		if partner, err := s.repo.GetProfile(ctx, quote.PartnerID); err == nil {
			partnerName = partner.FullName
		}

		revisionCount, err := s.repo.CountReviewEvents(ctx, quote.ID, enums.ReviewActionRevisionRequested)
		if err != nil {
			return dropOutcome[SpecialistPendingQuote](quote.ID, DropStoreFailure)
		}

		return keepOutcome(SpecialistPendingQuote{
			QuoteID:       quote.ID,
			QuoteNumber:   quote.Number(),
			Vehicle:       VehicleSummary{Plate: vehicle.Plate, Model: vehicle.Model},
			ClientName:    client.FullName,
			PartnerName:   partnerName,
			TotalValue:    quote.TotalValue,
			UpdatedAt:     updated.CreatedAt,
			WaitingDays:   negotiation.WaitingDays(now, updated.CreatedAt),
			RevisionCount: int(revisionCount),
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].WaitingDays > result.Items[j].WaitingDays
	})
	return result, nil
}

func (s *service) PartnerRevisionDetail(ctx context.Context, partnerID, quoteID uuid.UUID) (*RevisionDetail, error) {
	if partnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id required")
	}
	if quoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}

	quote, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if quote.PartnerID != partnerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "quote does not belong to partner")
	}
	if quote.Status != enums.QuoteStatusTimeRevisionRequested {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote is not awaiting partner revision")
	}

	event, err := s.repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionRevisionRequested)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revision event")
	}
	if event == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "revision request not found")
	}

	vehicle, err := s.repo.GetVehicleByServiceOrder(ctx, quote.ServiceOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	client, err := s.repo.GetProfile(ctx, vehicle.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client profile")
	}

	items, err := s.repo.ListQuoteItems(ctx, quote.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quote items")
	}

	specialistName := ""
	if event.SpecialistID != nil {
		if profile, err := s.repo.GetProfile(ctx, *event.SpecialistID); err == nil {
			specialistName = profile.FullName
		}
	}

	return &RevisionDetail{
		QuoteID:        quote.ID,
		QuoteNumber:    quote.Number(),
		Status:         quote.Status,
		TotalValue:     quote.TotalValue,
		Vehicle:        VehicleSummary{Plate: vehicle.Plate, Model: vehicle.Model},
		ClientName:     client.FullName,
		SpecialistName: specialistName,
		Comments:       event.Comments,
		RequestedAt:    event.CreatedAt,
		WaitingDays:    negotiation.WaitingDays(s.now(), event.CreatedAt),
		Items:          negotiation.MergeSuggestions(items, event),
	}, nil
}

func (s *service) RequestTimeRevision(ctx context.Context, specialistID, quoteID uuid.UUID, input RequestTimeRevisionInput) error {
	if specialistID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "specialist identity missing")
	}
	if quoteID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	if len(input.Suggestions) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item suggestion required")
	}
	for itemID, suggestion := range input.Suggestions {
		if suggestion.SuggestedDays <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "suggested days must be positive").
				WithDetails(map[string]any{"item_id": itemID})
		}
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.GetQuote(ctx, quoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
		}

		vehicle, err := repo.GetVehicleByServiceOrder(ctx, quote.ServiceOrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}
		clientIDs, err := repo.ListClientIDsForSpecialist(ctx, specialistID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned clients")
		}
		allowed := false
		for _, id := range clientIDs {
			if id == vehicle.ClientID {
				allowed = true
				break
			}
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeForbidden, "quote is not assigned to specialist")
		}

		if quote.Status != enums.QuoteStatusAdminReview && quote.Status != enums.QuoteStatusPendingAdminApproval {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quote is not reviewable in its current status")
		}

		items, err := repo.ListQuoteItems(ctx, quote.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quote items")
		}
		known := make(map[string]struct{}, len(items))
		for _, item := range items {
			known[item.ID.String()] = struct{}{}
		}
		for itemID := range input.Suggestions {
			if _, ok := known[itemID]; !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, "suggestion references unknown quote item").
					WithDetails(map[string]any{"item_id": itemID})
			}
		}

		// journal append first; the status flip is only meaningful once the
		// round is durably recorded
		event := &models.QuoteTimeReviewEvent{
			QuoteID:          quote.ID,
			Action:           enums.ReviewActionRevisionRequested,
			Comments:         input.Comments,
			SpecialistID:     &specialistID,
			RevisionRequests: input.Suggestions.Clone(),
		}
		if _, err := repo.CreateReviewEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append revision event")
		}
		if err := repo.UpdateQuoteStatus(ctx, quote.ID, enums.QuoteStatusTimeRevisionRequested); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
		}
		return nil
	})
}

func (s *service) ResubmitQuote(ctx context.Context, partnerID, quoteID uuid.UUID, input ResubmitInput) error {
	if partnerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "partner identity missing")
	}
	if quoteID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.GetQuote(ctx, quoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
		}
		if quote.PartnerID != partnerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "quote does not belong to partner")
		}
		if quote.Status != enums.QuoteStatusTimeRevisionRequested {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quote has no pending revision request")
		}

		event := &models.QuoteTimeReviewEvent{
			QuoteID:  quote.ID,
			Action:   enums.ReviewActionPartnerUpdated,
			Comments: input.Comments,
		}
		if _, err := repo.CreateReviewEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append partner update event")
		}
		if err := repo.UpdateQuoteStatus(ctx, quote.ID, enums.QuoteStatusAdminReview); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
		}
		return nil
	})
}

// resolveVehicleAndClient is the shared head of every per-quote resolution
// chain: vehicle must resolve before its owning client.
func (s *service) resolveVehicleAndClient(ctx context.Context, quote models.Quote) (*models.Vehicle, string, *DropReason) {
	vehicle, err := s.repo.GetVehicleByServiceOrder(ctx, quote.ServiceOrderID)
	if err != nil {
		reason := DropVehicleUnresolved
		return nil, "", &reason
	}
	client, err := s.repo.GetProfile(ctx, vehicle.ClientID)
	if err != nil {
		reason := DropClientUnresolved
		return nil, "", &reason
	}
	return vehicle, client.FullName, nil
}
