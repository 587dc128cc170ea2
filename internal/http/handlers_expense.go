package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/export"
	"fintrack/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := s.expenses.Add(r.Context(), userID(r), req.input())
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseResponse(e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := ParseExpenseFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	expenses, err := s.expenses.List(r.Context(), userID(r), f)
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseList(expenses))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := s.expenses.Update(r.Context(), userID(r), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeMsg(w, http.StatusOK, "Deleted")
}

// handleExportExpenses streams the filtered expense list as a CSV or XLSX
// attachment.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Unsupported export format")
		return
	}
	f, err := ParseExpenseFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}
	expenses, err := s.expenses.List(r.Context(), userID(r), f)
	if err != nil {
		writeServiceError(w, r, err, msgNotFound)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, expenses); err != nil {
		writeServiceError(w, r, fmt.Errorf("export %s: %w", format, err), msgNotFound)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Expenses exported",
		log.FieldComponent, log.ComponentExport,
		log.FieldUserID, userID(r),
		log.FieldFormat, string(format),
		"rows", len(expenses))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
