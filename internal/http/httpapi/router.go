package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter assembles the API surface with the shared middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Geo(lookup))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/payments", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).Post("/", app.PaymentsCreate)
		r.Get("/config", app.PaymentsConfig)
	})

	r.Post("/v1/webhooks/stripe", app.WebhookStripe)

	r.Route("/v1/creators/{slug}", func(r chi.Router) {
		r.Get("/", app.CreatorGet)
		r.Get("/donations", app.CreatorDonations)
	})

	r.With(middleware.AuthJWT(cfg.JWTSecret)).Get("/v1/me", app.Me)

	return r
}
