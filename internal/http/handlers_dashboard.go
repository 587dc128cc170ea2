package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/charts"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard.Get(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newDashboardResponse(d))
}

// handleDashboardChart renders /api/dashboard/charts/{kind}.png for the
// current month.
func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != charts.KindCategories && kind != charts.KindDaily {
		writeMsg(w, http.StatusNotFound, msgNotFound)
		return
	}
	d, err := s.dashboard.Get(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	img, err := charts.Render(kind, d)
	if errors.Is(err, charts.ErrNoData) {
		writeMsg(w, http.StatusNotFound, "No data to chart")
		return
	}
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
