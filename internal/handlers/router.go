package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/kasflow/backend/internal/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Services holds the service implementations behind the API.
type Services struct {
	Transactions TransactionService
	Accounts     AccountService
	Categories   CategoryService
	Recurring    RecurringService
	Dashboard    DashboardService
	Health       map[string]Pinger
}

// RouterConfig carries the HTTP settings. Location decides which calendar
// day the dashboard reports on; nil means UTC.
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration
	SwaggerURL     string
	Location       *time.Location
}

// NewRouter mounts /health, the optional Swagger UI and the authenticated
// /api/v1 routes.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", NewHealthHandler(svc.Health).ServeHTTP)

	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
	}

	transactions := NewTransactionHandler(svc.Transactions)
	accounts := NewAccountHandler(svc.Accounts)
	categories := NewCategoryHandler(svc.Categories)
	recurring := NewRecurringHandler(svc.Recurring)
	dashboard := NewDashboardHandler(svc.Dashboard, cfg.Location)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.Auth(cfg.JWTSecret))

		r.Get("/dashboard", dashboard.Get)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactions.List)
			r.Post("/", transactions.Create)
			r.Get("/{id}", transactions.Get)
			r.Put("/{id}", transactions.Update)
			r.Delete("/{id}", transactions.Delete)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accounts.List)
			r.Post("/", accounts.Create)
			r.Get("/{id}", accounts.Get)
			r.Put("/{id}", accounts.Update)
			r.Delete("/{id}", accounts.Delete)
			r.Get("/{id}/reconcile", accounts.Reconcile)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Route("/recurring-transactions", func(r chi.Router) {
			r.Get("/", recurring.List)
			r.Post("/", recurring.Create)
			r.Get("/{id}", recurring.Get)
			r.Put("/{id}", recurring.Update)
			r.Delete("/{id}", recurring.Delete)
			r.Get("/{id}/occurrences", recurring.Occurrences)
		})
	})

	return r
}
