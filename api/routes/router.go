package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafaelbsfarias/proline-backend/api/controllers"
	"github.com/rafaelbsfarias/proline-backend/api/middleware"
	"github.com/rafaelbsfarias/proline-backend/internal/reviews"
	"github.com/rafaelbsfarias/proline-backend/pkg/config"
	"github.com/rafaelbsfarias/proline-backend/pkg/db"
	"github.com/rafaelbsfarias/proline-backend/pkg/enums"
	"github.com/rafaelbsfarias/proline-backend/pkg/logger"
	"github.com/rafaelbsfarias/proline-backend/pkg/metrics"
	"github.com/rafaelbsfarias/proline-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	reviewsService reviews.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	mutationLimiter := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		policy := middleware.NewMutationRateLimitPolicy(
			"reviews",
			cfg.RateLimit.MutationWindow,
			cfg.RateLimit.MutationIPLimit,
			cfg.RateLimit.MutationUserLimit,
		)
		mutationLimiter = middleware.MutationRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/partner", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRolePartner), logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/pending-revisions", controllers.PartnerPendingRevisions(reviewsService, logg))
			r.Get("/in-review", controllers.PartnerInReviewQuotes(reviewsService, logg))
			r.Get("/{quoteId}/revision", controllers.PartnerRevisionDetail(reviewsService, logg))
			r.With(mutationLimiter).
				Post("/{quoteId}/resubmit", controllers.PartnerResubmitQuote(reviewsService, logg))
		})
	})

	r.Route("/api/v1/specialist", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleSpecialist), logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/pending-review", controllers.SpecialistPendingReviews(reviewsService, logg))
			r.With(mutationLimiter).
				Post("/{quoteId}/request-revision", controllers.SpecialistRequestTimeRevision(reviewsService, logg))
		})
	})

	return r
}
