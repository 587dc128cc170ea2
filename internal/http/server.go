// Package http serves the JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fintrack/internal/log"
	authmw "fintrack/internal/middleware/auth"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
)

type Config struct {
	Addr               string
	AllowedOrigins     []string
	RateLimitPerMinute int
	// RequestTimeout bounds every request, store calls included.
	RequestTimeout time.Duration
	TrustedProxies []string
}

// Deps are the services behind the API. Pinger is optional.
type Deps struct {
	Auth      AuthService
	Budgets   BudgetService
	Expenses  ExpenseService
	Dashboard DashboardService
	Pinger    Pinger
}

type Server struct {
	http.Server

	auth      AuthService
	budgets   BudgetService
	expenses  ExpenseService
	dashboard DashboardService
	pinger    Pinger

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer wires middleware and routes, returning a ready-to-run server.
func NewServer(cfg Config, deps Deps, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentHTTP})
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	detector := security.NewDetector()
	for _, cidr := range cfg.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring invalid trusted proxy", "cidr", cidr, log.FieldError, err)
		}
	}

	s := &Server{
		auth:      deps.Auth,
		budgets:   deps.Budgets,
		expenses:  deps.Expenses,
		dashboard: deps.Dashboard,
		pinger:    deps.Pinger,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector:  detector,
		tracer:    trace.NewMiddleware(logger, detector.ExtractClientIP),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(logger.WithComponent(log.ComponentHTTP)))
	r.Use(s.tracer.Middleware)
	r.Use(log.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) }))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(detector.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-auth-token", trace.HeaderRequestID},
		ExposedHeaders:   []string{trace.HeaderRequestID, "Content-Disposition", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(api chi.Router) {
		api.Use(s.limiter.Middleware(detector.ExtractClientIP, func(w http.ResponseWriter, _ *http.Request) {
			writeMsg(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}))
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)

		api.Group(func(p chi.Router) {
			p.Use(authmw.Middleware(s.auth))

			p.Route("/budget", func(b chi.Router) {
				b.Post("/", s.handleSetBudget)
				b.Get("/", s.handleListBudgets)
				b.Get("/status", s.handleBudgetStatus)
				b.Put("/{id}", s.handleUpdateBudget)
				b.Delete("/{id}", s.handleDeleteBudget)
			})

			p.Route("/expenses", func(e chi.Router) {
				e.Post("/", s.handleCreateExpense)
				e.Get("/", s.handleListExpenses)
				e.Get("/export", s.handleExportExpenses)
				e.Put("/{id}", s.handleUpdateExpense)
				e.Delete("/{id}", s.handleDeleteExpense)
			})

			p.Get("/dashboard", s.handleDashboard)
			p.Get("/dashboard/charts/{kind}.png", s.handleDashboardChart)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeMsg(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeMsg(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops the rate limiter sweep and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
