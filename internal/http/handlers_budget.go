package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const msgBudgetNotFound = "Budget not found"

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := s.budgets.Set(r.Context(), userID(r), req.Category, req.limit())
	if err != nil {
		writeServiceError(w, r, err, msgBudgetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newBudgetResponse(b))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, msgBudgetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newBudgetList(budgets))
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	messages, err := s.budgets.Status(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err, msgBudgetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := s.budgets.Update(r.Context(), userID(r), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		writeServiceError(w, r, err, msgBudgetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newBudgetResponse(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, msgBudgetNotFound)
		return
	}
	writeMsg(w, http.StatusOK, "Budget deleted")
}
