package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

// Filter narrows ListQuotes. A nil PartnerID means no partner scoping;
// an empty Statuses slice means any status.
type Filter struct {
	PartnerID *uuid.UUID
	Statuses  []enums.QuoteStatus
}

// Repository defines persistence operations for the negotiation engine:
// quote/vehicle/profile reads, journal access and the two writes the
// mutation entry points perform.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListQuotes(ctx context.Context, filter Filter) ([]models.Quote, error)
	GetVehicleByServiceOrder(ctx context.Context, serviceOrderID uuid.UUID) (*models.Vehicle, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListQuoteItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteItem, error)
	ListClientIDsForSpecialist(ctx context.Context, specialistID uuid.UUID) ([]uuid.UUID, error)

	// Journal surface, shared with internal/negotiation.
	LatestReviewEvent(ctx context.Context, quoteID uuid.UUID, action enums.ReviewAction) (*models.QuoteTimeReviewEvent, error)
	CountReviewEvents(ctx context.Context, quoteID uuid.UUID, actions ...enums.ReviewAction) (int64, error)

	CreateReviewEvent(ctx context.Context, event *models.QuoteTimeReviewEvent) (*models.QuoteTimeReviewEvent, error)
	UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status enums.QuoteStatus) error
}
