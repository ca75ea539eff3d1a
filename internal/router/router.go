package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rasoi-backend/internal/handlers"
	"rasoi-backend/internal/metrics"
	"rasoi-backend/internal/middleware"
)

// Deps carries everything the router mounts. The /api/v1 group needs JWTAuth;
// RecipeHandler and DishHandler are optional and skipped when nil.
type Deps struct {
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer
	// address. The proxy rate limiter keys on that address.
	TrustProxyHeaders bool

	ProxyLimiter middleware.Limiter
	Proxy        *handlers.ProxyHandler

	JWTAuth  *middleware.JWTAuth
	Recipes  *handlers.RecipeHandler
	Dishes   *handlers.DishHandler
	Settings *handlers.SettingsHandler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if d.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(d.Log, d.Metrics))
	r.Use(chimiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// ──── AI Functions (public, CORS-open) ────
	r.Route("/functions/v1", func(r chi.Router) {
		r.Use(middleware.CORS)
		if d.ProxyLimiter != nil {
			r.Use(middleware.RateLimit(d.ProxyLimiter, d.Log))
		}
		r.Options("/generate-healthy-dish", d.Proxy.Preflight)
		r.Post("/generate-healthy-dish", d.Proxy.GenerateHealthyDish)
		r.Options("/chat-recipe", d.Proxy.Preflight)
		r.Post("/chat-recipe", d.Proxy.ChatRecipe)
	})

	if d.JWTAuth == nil {
		return r
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(d.JWTAuth.Middleware)

		// ──── Recipe Routes ────
		if d.Recipes != nil {
			r.Get("/recipes", d.Recipes.List)
		}

		// ──── Dish Routes ────
		if d.Dishes != nil {
			r.Route("/dishes", func(r chi.Router) {
				r.Post("/", d.Dishes.Create)
				r.Get("/", d.Dishes.List)
				r.Post("/{id}/transform", d.Dishes.Transform)
			})
		}

		// ──── Settings Routes ────
		if d.Settings != nil {
			r.Route("/settings/accessibility", func(r chi.Router) {
				r.Get("/", d.Settings.Get)
				r.Put("/", d.Settings.Update)
				r.Post("/toggle/{feature}", d.Settings.Toggle)
			})
		}
	})

	return r
}
