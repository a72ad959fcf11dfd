package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	"github.com/rafaelbsfarias/proline-backend/pkg/types"
)

func setupQuotesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	profiles := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	vehicles := `
CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  plate TEXT NOT NULL,
  model TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	serviceOrders := `
CREATE TABLE IF NOT EXISTS service_orders (
  id TEXT PRIMARY KEY,
  vehicle_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	quotes := `
CREATE TABLE IF NOT EXISTS quotes (
  id TEXT PRIMARY KEY,
  partner_id TEXT NOT NULL,
  service_order_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending_admin_approval',
  total_value TEXT NOT NULL DEFAULT '0',
  sent_to_admin_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	quoteItems := `
CREATE TABLE IF NOT EXISTS quote_items (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL,
  description TEXT NOT NULL,
  estimated_days INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	reviewEvents := `
CREATE TABLE IF NOT EXISTS quote_time_review_events (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL,
  action TEXT NOT NULL,
  comments TEXT,
  specialist_id TEXT,
  revision_requests TEXT,
  created_at DATETIME
);`
	clientSpecialists := `
CREATE TABLE IF NOT EXISTS client_specialists (
  client_id TEXT NOT NULL,
  specialist_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (client_id, specialist_id)
);`

	for _, ddl := range []string{profiles, vehicles, serviceOrders, quotes, quoteItems, reviewEvents, clientSpecialists} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedQuote(t *testing.T, db *gorm.DB, partnerID uuid.UUID, status enums.QuoteStatus, createdAt time.Time) models.Quote {
	t.Helper()
	quote := models.Quote{
		ID:             uuid.New(),
		PartnerID:      partnerID,
		ServiceOrderID: uuid.New(),
		Status:         status,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(&quote).Error)
	return quote
}

func TestGetQuote(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedQuote(t, db, uuid.New(), enums.QuoteStatusAdminReview, time.Now().UTC())

	found, err := repo.GetQuote(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, enums.QuoteStatusAdminReview, found.Status)

	_, err = repo.GetQuote(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListQuotesFiltersAndOrder(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	partner := uuid.New()
	other := uuid.New()
	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	older := seedQuote(t, db, partner, enums.QuoteStatusTimeRevisionRequested, base)
	newer := seedQuote(t, db, partner, enums.QuoteStatusTimeRevisionRequested, base.Add(time.Hour))
	seedQuote(t, db, partner, enums.QuoteStatusApproved, base.Add(2*time.Hour))
	seedQuote(t, db, other, enums.QuoteStatusTimeRevisionRequested, base.Add(3*time.Hour))

	listed, err := repo.ListQuotes(ctx, Filter{
		PartnerID: &partner,
		Statuses:  []enums.QuoteStatus{enums.QuoteStatusTimeRevisionRequested},
	})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID, "newest first")
	assert.Equal(t, older.ID, listed[1].ID)
}

func TestGetVehicleByServiceOrder(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	vehicle := models.Vehicle{ID: uuid.New(), ClientID: clientID, Plate: "ABC1D23", Model: "Fiesta"}
	require.NoError(t, db.Create(&vehicle).Error)
	order := models.ServiceOrder{ID: uuid.New(), VehicleID: vehicle.ID}
	require.NoError(t, db.Create(&order).Error)

	found, err := repo.GetVehicleByServiceOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, found.ID)
	assert.Equal(t, clientID, found.ClientID)
	assert.Equal(t, "ABC1D23", found.Plate)

	_, err = repo.GetVehicleByServiceOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListQuoteItemsOrderedByCreation(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quoteID := uuid.New()
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	second := models.QuoteItem{ID: uuid.New(), QuoteID: quoteID, Description: "paint", EstimatedDays: 5, CreatedAt: base.Add(time.Minute)}
	first := models.QuoteItem{ID: uuid.New(), QuoteID: quoteID, Description: "bumper", EstimatedDays: 2, CreatedAt: base}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&first).Error)

	items, err := repo.ListQuoteItems(ctx, quoteID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "bumper", items[0].Description)
	assert.Equal(t, "paint", items[1].Description)
}

func TestLatestReviewEventPicksNewestWithIdTieBreak(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quoteID := uuid.New()
	at := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

	older := models.QuoteTimeReviewEvent{
		ID:      uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		QuoteID: quoteID, Action: enums.ReviewActionRevisionRequested,
		RevisionRequests: types.RevisionRequests{"a": {SuggestedDays: 4, Reason: "old round"}},
		CreatedAt:        at.Add(-time.Hour),
	}
	tied1 := models.QuoteTimeReviewEvent{
		ID:      uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		QuoteID: quoteID, Action: enums.ReviewActionRevisionRequested,
		RevisionRequests: types.RevisionRequests{"a": {SuggestedDays: 5, Reason: "tie low"}},
		CreatedAt:        at,
	}
	tied2 := models.QuoteTimeReviewEvent{
		ID:      uuid.MustParse("00000000-0000-0000-0000-000000000003"),
		QuoteID: quoteID, Action: enums.ReviewActionRevisionRequested,
		RevisionRequests: types.RevisionRequests{"a": {SuggestedDays: 6, Reason: "tie high"}},
		CreatedAt:        at,
	}
	for _, ev := range []models.QuoteTimeReviewEvent{older, tied1, tied2} {
		event := ev
		require.NoError(t, db.Create(&event).Error)
	}

	latest, err := repo.LatestReviewEvent(ctx, quoteID, enums.ReviewActionRevisionRequested)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, tied2.ID, latest.ID, "highest id wins on equal created_at")
	assert.Equal(t, 6, latest.RevisionRequests["a"].SuggestedDays)

	absent, err := repo.LatestReviewEvent(ctx, quoteID, enums.ReviewActionPartnerUpdated)
	require.NoError(t, err)
	assert.Nil(t, absent, "missing events are not errors")
}

func TestCountReviewEvents(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quoteID := uuid.New()
	at := time.Date(2025, 4, 3, 8, 0, 0, 0, time.UTC)
	for i, action := range []enums.ReviewAction{
		enums.ReviewActionRevisionRequested,
		enums.ReviewActionPartnerUpdated,
		enums.ReviewActionRevisionRequested,
	} {
		event := models.QuoteTimeReviewEvent{
			ID: uuid.New(), QuoteID: quoteID, Action: action,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&event).Error)
	}

	count, err := repo.CountReviewEvents(ctx, quoteID, enums.ReviewActionRevisionRequested)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountReviewEvents(ctx, quoteID, enums.ReviewActionRevisionRequested, enums.ReviewActionPartnerUpdated)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountReviewEvents(ctx, quoteID)
	require.NoError(t, err)
	assert.Zero(t, count, "no actions means nothing to count")
}

func TestListClientIDsForSpecialist(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	specialist := uuid.New()
	clientA := uuid.New()
	clientB := uuid.New()
	require.NoError(t, db.Create(&models.ClientSpecialist{ClientID: clientA, SpecialistID: specialist}).Error)
	require.NoError(t, db.Create(&models.ClientSpecialist{ClientID: clientB, SpecialistID: specialist}).Error)
	require.NoError(t, db.Create(&models.ClientSpecialist{ClientID: uuid.New(), SpecialistID: uuid.New()}).Error)

	ids, err := repo.ListClientIDsForSpecialist(ctx, specialist)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{clientA, clientB}, ids)
}

func TestCreateReviewEventAndUpdateStatus(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quote := seedQuote(t, db, uuid.New(), enums.QuoteStatusAdminReview, time.Now().UTC())
	specialist := uuid.New()

	event := &models.QuoteTimeReviewEvent{
		ID:           uuid.New(),
		QuoteID:      quote.ID,
		Action:       enums.ReviewActionRevisionRequested,
		SpecialistID: &specialist,
		RevisionRequests: types.RevisionRequests{
			uuid.NewString(): {SuggestedDays: 4, Reason: "supplier backlog"},
		},
	}
	created, err := repo.CreateReviewEvent(ctx, event)
	require.NoError(t, err)
	require.NotNil(t, created)

	reloaded, err := repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionRevisionRequested)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.NotNil(t, reloaded.SpecialistID)
	assert.Equal(t, specialist, *reloaded.SpecialistID)
	assert.Len(t, reloaded.RevisionRequests, 1)

	require.NoError(t, repo.UpdateQuoteStatus(ctx, quote.ID, enums.QuoteStatusTimeRevisionRequested))
	updated, err := repo.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusTimeRevisionRequested, updated.Status)
}

func TestWithTxSharesTransaction(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	quote := seedQuote(t, db, uuid.New(), enums.QuoteStatusTimeRevisionRequested, time.Now().UTC())

	err := db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if _, err := txRepo.CreateReviewEvent(ctx, &models.QuoteTimeReviewEvent{
			ID: uuid.New(), QuoteID: quote.ID, Action: enums.ReviewActionPartnerUpdated,
		}); err != nil {
			return err
		}
		return txRepo.UpdateQuoteStatus(ctx, quote.ID, enums.QuoteStatusAdminReview)
	})
	require.NoError(t, err)

	updated, err := repo.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAdminReview, updated.Status)

	event, err := repo.LatestReviewEvent(ctx, quote.ID, enums.ReviewActionPartnerUpdated)
	require.NoError(t, err)
	assert.NotNil(t, event)
}
