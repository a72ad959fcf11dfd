package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelbsfarias/proline-backend/internal/reviews"
	pkgauth "github.com/rafaelbsfarias/proline-backend/pkg/auth"
	"github.com/rafaelbsfarias/proline-backend/pkg/config"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	pkgerrors "github.com/rafaelbsfarias/proline-backend/pkg/errors"
	"github.com/rafaelbsfarias/proline-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubReviewsService struct{}

func (stubReviewsService) PartnerPendingRevisions(ctx context.Context, partnerID uuid.UUID) (*reviews.BatchResult[reviews.PendingRevisionQuote], error) {
	return &reviews.BatchResult[reviews.PendingRevisionQuote]{}, nil
}

func (stubReviewsService) PartnerInReview(ctx context.Context, partnerID uuid.UUID) (*reviews.BatchResult[reviews.InReviewQuote], error) {
	return &reviews.BatchResult[reviews.InReviewQuote]{}, nil
}

func (stubReviewsService) SpecialistPendingReview(ctx context.Context, specialistID uuid.UUID) (*reviews.BatchResult[reviews.SpecialistPendingQuote], error) {
	return &reviews.BatchResult[reviews.SpecialistPendingQuote]{}, nil
}

func (stubReviewsService) PartnerRevisionDetail(ctx context.Context, partnerID, quoteID uuid.UUID) (*reviews.RevisionDetail, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubReviewsService) RequestTimeRevision(ctx context.Context, specialistID, quoteID uuid.UUID, input reviews.RequestTimeRevisionInput) error {
	return nil
}

func (stubReviewsService) ResubmitQuote(ctx context.Context, partnerID, quoteID uuid.UUID, input reviews.ResubmitInput) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "proline",
			ExpirationMinutes: 15,
		},
		RateLimit: config.RateLimitConfig{
			MutationWindow:    time.Minute,
			MutationIPLimit:   60,
			MutationUserLimit: 20,
		},
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, nil, nil, nil, stubReviewsService{})
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("X-ProLine-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPartnerRoutesRequireAuth(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/quotes/pending-revisions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestPartnerRoutesRejectSpecialistRole(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/quotes/pending-revisions", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleSpecialist))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestPartnerPendingRevisionsRoute(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/partner/quotes/pending-revisions", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRolePartner))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSpecialistMutationRoute(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	quoteID := uuid.New()
	itemID := uuid.New()
	body := `{"comments":"too tight","suggestions":{"` + itemID.String() + `":{"suggested_days":4,"reason":"queue"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/specialist/quotes/"+quoteID.String()+"/request-revision", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleSpecialist))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsRouteAbsentWithoutRegistry(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
