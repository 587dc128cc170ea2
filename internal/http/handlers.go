package http

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// Service ports consumed by the handlers; *services.XxxService satisfy them.
type (
	AuthService interface {
		Register(ctx context.Context, email, password string) (string, error)
		Login(ctx context.Context, email, password string) (string, error)
		VerifyToken(ctx context.Context, token string) (string, error)
	}

	BudgetService interface {
		Set(ctx context.Context, owner, category string, limit core.Money) (core.Budget, error)
		List(ctx context.Context, owner string) ([]core.Budget, error)
		Status(ctx context.Context, owner string) ([]string, error)
		Update(ctx context.Context, owner, id string, patch services.BudgetPatch) (core.Budget, error)
		Delete(ctx context.Context, owner, id string) error
	}

	ExpenseService interface {
		Add(ctx context.Context, owner string, in services.ExpenseInput) (core.Expense, error)
		List(ctx context.Context, owner string, f core.ExpenseFilter) ([]core.Expense, error)
		Update(ctx context.Context, owner, id string, patch services.ExpensePatch) (core.Expense, error)
		Delete(ctx context.Context, owner, id string) error
	}

	DashboardService interface {
		Get(ctx context.Context, owner string) (core.Dashboard, error)
	}
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type metricsResponse struct {
	Requests           int64 `json:"requests"`
	ClientErrors       int64 `json:"client_errors"`
	ServerErrors       int64 `json:"server_errors"`
	AvgLatencyMs       int64 `json:"avg_latency_ms"`
	RateLimitRejected  int64 `json:"rate_limit_rejected"`
	RateLimitClients   int   `json:"rate_limit_clients"`
	SuspiciousRequests int64 `json:"suspicious_requests"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	m := s.tracer.Metrics()
	resp := metricsResponse{
		Requests:           m.TotalRequests,
		ClientErrors:       m.ClientErrors,
		ServerErrors:       m.ServerErrors,
		RateLimitRejected:  s.limiter.Rejected(),
		RateLimitClients:   s.limiter.ActiveClients(),
		SuspiciousRequests: s.detector.SuspiciousRequests(),
	}
	if m.TotalRequests > 0 {
		resp.AvgLatencyMs = m.TotalLatencyMs / m.TotalRequests
	}
	writeJSON(w, http.StatusOK, resp)
}
