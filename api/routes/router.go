package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neonclouds/neonclouds-backend/api/controllers"
	"github.com/neonclouds/neonclouds-backend/api/middleware"
	"github.com/neonclouds/neonclouds-backend/internal/assistant"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/internal/studio"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
	"github.com/neonclouds/neonclouds-backend/pkg/metrics"
	"github.com/neonclouds/neonclouds-backend/pkg/redis"
)

type Params struct {
	Config           *config.Config
	Logger           *logger.Logger
	Catalog          *catalog.Catalog
	Sessions         *session.Store
	AssistantService assistant.Service
	StudioService    studio.Service
	RedisClient      *redis.Client
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsHandler   http.Handler
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.CORS(p.Config.CORS),
		middleware.Metrics(p.HTTPMetrics),
		middleware.Logging(p.Logger),
	)

	// go-redis clients are pointers; a typed nil must not reach the
	// rate limiter or the readiness check as a non-nil interface.
	var limiterStore interface {
		RateLimitKey(scope string) string
		IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	}
	var pinger redis.Pinger
	if p.RedisClient != nil {
		limiterStore = p.RedisClient
		pinger = p.RedisClient
	}

	chatPolicy := middleware.NewAIRateLimitPolicy(
		"chat",
		p.Config.AIRateLimit.Window,
		p.Config.AIRateLimit.IPLimit,
		p.Config.AIRateLimit.SessionLimit,
	)
	studioPolicy := middleware.NewAIRateLimitPolicy(
		"studio",
		p.Config.AIRateLimit.Window,
		p.Config.AIRateLimit.IPLimit,
		p.Config.AIRateLimit.SessionLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, pinger))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(p.Catalog, p.Logger))
		r.Get("/products/{productId}", controllers.CatalogGet(p.Catalog, p.Logger))
		r.Get("/categories", controllers.CatalogCategories())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(p.Sessions, p.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Logger))
			r.Post("/items", controllers.CartAdd(p.Catalog, p.Logger))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(p.Logger))
			r.Delete("/items/{productId}", controllers.CartRemove(p.Logger))
		})

		r.Route("/view", func(r chi.Router) {
			r.Get("/", controllers.ViewFetch(p.Catalog, p.Logger))
			r.Put("/", controllers.ViewNavigate(p.Catalog, p.Logger))
			r.Post("/product", controllers.ViewSelectProduct(p.Catalog, p.Logger))
			r.Put("/category", controllers.ViewSetCategory(p.Catalog, p.Logger))
			r.Put("/quick-view", controllers.ViewOpenQuickView(p.Catalog, p.Logger))
			r.Delete("/quick-view", controllers.ViewCloseQuickView(p.Catalog, p.Logger))
		})

		r.Route("/detail", func(r chi.Router) {
			r.Get("/", controllers.DetailFetch(p.Logger))
			r.Put("/image", controllers.DetailSelectImage(p.Logger))
			r.Put("/rotation", controllers.DetailSetRotation(p.Logger))
		})

		r.Route("/assistant", func(r chi.Router) {
			r.Get("/messages", controllers.AssistantHistory(p.Logger))
			r.With(middleware.AIRateLimit(chatPolicy, limiterStore, p.Logger)).
				Post("/messages", controllers.AssistantSend(p.AssistantService, p.Logger))
		})

		r.Route("/studio", func(r chi.Router) {
			r.Get("/", controllers.StudioFetch(p.Logger))
			r.Post("/source/upload", controllers.StudioUploadSource(p.StudioService, p.Logger))
			r.Post("/source/catalog", controllers.StudioCatalogSource(p.StudioService, p.Catalog, p.Logger))
			r.With(middleware.AIRateLimit(studioPolicy, limiterStore, p.Logger)).
				Post("/generate", controllers.StudioGenerate(p.StudioService, p.Logger))
		})

		r.Delete("/session", controllers.SessionDelete(p.Sessions, p.Logger))
	})

	return r
}
