package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/cardfinderz/api/controllers"
	"github.com/angelmondragon/cardfinderz/api/middleware"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/pkg/config"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/redis"
)

// NewRouter wires the HTTP surface. redisClient may be nil, which disables
// the redis health probe and the search rate limit.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	state *app.State,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	var (
		pinger  redis.Pinger
		limiter middleware.RateLimiter
	)
	if redisClient != nil {
		pinger = redisClient
		limiter = redisClient
	}

	searchPolicy := middleware.NewRateLimitPolicy(
		"search",
		cfg.RateLimit.SearchWindow,
		cfg.RateLimit.SearchIPLimit,
	).WithTrustedProxy(cfg.RateLimit.TrustProxyHeaders)

	r.Get("/healthz", controllers.Healthz(cfg, logg, pinger))
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.State(state))

		r.Route("/featured", func(r chi.Router) {
			r.Get("/", controllers.FeaturedList(logg))
			r.Get("/{cardId}", controllers.FeaturedDetail(logg))
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", controllers.SearchState())
			r.With(middleware.RateLimit(searchPolicy, limiter, logg)).Post("/", controllers.SearchSubmit(logg))
			r.Delete("/", controllers.SearchClear())
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch())
			r.Delete("/", controllers.CartClear())
			r.Post("/items", controllers.CartAddItem(logg))
			r.Put("/items/{cardId}", controllers.CartUpdateItem(logg))
			r.Delete("/items/{cardId}", controllers.CartRemoveItem())
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsFetch(cfg.Settings))
			r.Put("/", controllers.SettingsUpdate(cfg.Settings, logg))
		})
	})

	return r
}
