package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bfb-software/foodconnect-backend/api/controllers"
	"github.com/bfb-software/foodconnect-backend/api/middleware"
	"github.com/bfb-software/foodconnect-backend/internal/auth"
	"github.com/bfb-software/foodconnect-backend/internal/inventory"
	"github.com/bfb-software/foodconnect-backend/internal/kpi"
	request "github.com/bfb-software/foodconnect-backend/internal/requests"
	"github.com/bfb-software/foodconnect-backend/pkg/auth/session"
	"github.com/bfb-software/foodconnect-backend/pkg/config"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	"github.com/bfb-software/foodconnect-backend/pkg/logger"
	"github.com/bfb-software/foodconnect-backend/pkg/metrics"
	"github.com/bfb-software/foodconnect-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. cmd/api builds one after
// wiring the storage, session, and service layers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	Inventory       inventory.Service
	Requests        request.Service
	KPIs            kpi.Service
	HTTPMetrics     *metrics.HTTPMetrics
	PromRegistry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadyDeps(deps.DB, deps.Redis)))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	// A nil limiter disables throttling (tests, local runs without Redis).
	var limiter middleware.RateLimiter
	if deps.Redis != nil {
		limiter = deps.Redis
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, limiter, logg)).
			Post("/signup", controllers.AuthSignup(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/supplier/login", controllers.AuthLogin(deps.AuthService, enums.RoleSupplier, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/recipient/login", controllers.AuthLogin(deps.AuthService, enums.RoleRecipient, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1/public", func(r chi.Router) {
		r.Get("/food-items", controllers.PublicFoodItems(deps.Inventory, logg))
		r.Get("/requests", controllers.PublicRequests(deps.Requests, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/api/v1/supplier", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleSupplier, logg))
			r.Get("/items", controllers.ItemsOwned(deps.Inventory, logg))
			r.Post("/items", controllers.ItemCreate(deps.Inventory, logg))
			r.Get("/requests", controllers.SupplierRequests(deps.Requests, logg))
			r.Get("/kpis", controllers.SupplierKPIs(deps.KPIs, logg))
		})

		r.Route("/api/v1/recipient", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleRecipient, logg))
			r.Get("/surplus", controllers.SurplusAvailable(deps.Inventory, logg))
			r.Get("/requests", controllers.RecipientRequests(deps.Requests, logg))
			r.Post("/requests", controllers.RequestSubmit(deps.Requests, logg))
			r.Get("/kpis", controllers.RecipientKPIs(deps.KPIs, logg))
		})

		// Either party moves a request through its workflow; the service
		// checks the actor against the supplier and recipient ids.
		r.Route("/api/v1/requests/{requestID}", func(r chi.Router) {
			r.Post("/status", controllers.RequestUpdateStatus(deps.Requests, logg))
			r.Put("/status", controllers.RequestUpdateStatus(deps.Requests, logg))
		})
	})

	return r
}
