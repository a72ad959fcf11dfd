package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) ListQuotes(ctx context.Context, filter Filter) ([]models.Quote, error) {
	query := r.db.WithContext(ctx).Model(&models.Quote{})
	if filter.PartnerID != nil {
		query = query.Where("partner_id = ?", *filter.PartnerID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var quotes []models.Quote
	if err := query.Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repository) GetVehicleByServiceOrder(ctx context.Context, serviceOrderID uuid.UUID) (*models.Vehicle, error) {
	var order models.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("id = ?", serviceOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	err = r.db.WithContext(ctx).
		Where("id = ?", order.VehicleID).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) ListQuoteItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteItem, error) {
	var items []models.QuoteItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListClientIDsForSpecialist(ctx context.Context, specialistID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ClientSpecialist{}).
		Where("specialist_id = ?", specialistID).
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// LatestReviewEvent returns the newest event of the action for the quote,
// or (nil, nil) when none exists. Identical timestamps break on highest id
// so the answer stays deterministic.
func (r *repository) LatestReviewEvent(ctx context.Context, quoteID uuid.UUID, action enums.ReviewAction) (*models.QuoteTimeReviewEvent, error) {
	var events []models.QuoteTimeReviewEvent
	err := r.db.WithContext(ctx).
		Where("quote_id = ? AND action = ?", quoteID, action).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *repository) CountReviewEvents(ctx context.Context, quoteID uuid.UUID, actions ...enums.ReviewAction) (int64, error) {
	if len(actions) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QuoteTimeReviewEvent{}).
		Where("quote_id = ? AND action IN ?", quoteID, actions).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CreateReviewEvent(ctx context.Context, event *models.QuoteTimeReviewEvent) (*models.QuoteTimeReviewEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *repository) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status enums.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Update("status", status).Error
}
