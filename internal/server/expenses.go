package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ladle/internal/api"
	"ladle/internal/store"
)

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month, err := monthParam(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expenses, err := s.store.ListExpenses(r.Context(), month)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ExpenseListResponse{Expenses: api.FromExpenses(expenses)})
	case http.MethodPost:
		var req struct {
			Title    string  `json:"title"`
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
			Note     string  `json:"note"`
			SpentOn  string  `json:"spent_on"`
		}
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			s.writeError(w, http.StatusBadRequest, "expense title is required")
			return
		}
		if req.Amount <= 0 {
			s.writeError(w, http.StatusBadRequest, "expense amount must be positive")
			return
		}
		if spentOn := strings.TrimSpace(req.SpentOn); spentOn != "" {
			if _, err := time.Parse("2006-01-02", spentOn); err != nil {
				s.writeError(w, http.StatusBadRequest, fmt.Sprintf("spent_on %q is not a YYYY-MM-DD date", spentOn))
				return
			}
		}

		exp, err := s.store.CreateExpense(r.Context(), store.Expense{
			Title:    req.Title,
			Amount:   req.Amount,
			Category: req.Category,
			Note:     req.Note,
			SpentOn:  req.SpentOn,
		})
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.ExpenseResponse{Expense: api.FromExpense(exp)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleExpenseItem(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/expenses/")
	if len(parts) == 1 && parts[0] == "summary" {
		s.handleExpenseSummary(w, r)
		return
	}
	if len(parts) != 1 {
		s.writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	id := parts[0]
	switch r.Method {
	case http.MethodGet:
		exp, err := s.store.GetExpense(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if exp == nil {
			s.writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.ExpenseResponse{Expense: api.FromExpense(exp)})
	case http.MethodDelete:
		deleted, err := s.store.DeleteExpense(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !deleted {
			s.writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		s.writeJSON(w, http.StatusNoContent, nil)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	month, err := monthParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if month == "" {
		s.writeError(w, http.StatusBadRequest, "month is required")
		return
	}

	summary, err := s.store.SummarizeExpenses(r.Context(), month)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.ExpenseSummaryResponse{Summary: api.FromExpenseSummary(summary)})
}

func monthParam(r *http.Request) (string, error) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", fmt.Errorf("month %q is not a YYYY-MM month", month)
	}
	return month, nil
}
