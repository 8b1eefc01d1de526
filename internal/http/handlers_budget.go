package http

import (
	"net/http"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"
)

type createBudgetRequest struct {
	CategoryID string `json:"categoryId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	LimitCents *int64 `json:"limitCents,omitempty"`
	Limit      string `json:"limit,omitempty"`
}

type updateBudgetRequest struct {
	CategoryID *string `json:"categoryId,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
	LimitCents *int64  `json:"limitCents,omitempty"`
	Limit      string  `json:"limit,omitempty"`
}

type budgetResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	PeriodStart string `json:"periodStart"`
	Period      string `json:"period"`
	LimitCents  int64  `json:"limitCents"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		CategoryID:  b.CategoryID,
		PeriodStart: b.PeriodStart.Format("2006-01-02"),
		Period:      core.PeriodOf(b.PeriodStart).Label(),
		LimitCents:  b.Limit.Cents,
	}
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cents, err := amountCents(req.LimitCents, req.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	b, err := s.budgets.Create(r.Context(), owner, req.CategoryID, req.Year, req.Month, core.Money{Cents: cents})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Without year/month the listing spans all periods.
	var periodStart time.Time
	if r.URL.Query().Get("year") != "" || r.URL.Query().Get("month") != "" {
		year, month, err := parseYearMonth(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := core.ValidateYearMonth(year, month); err != nil {
			writeError(w, r, err)
			return
		}
		periodStart = core.ResolvePeriod(year, month).Start
	}

	budgets, err := s.budgets.List(r.Context(), owner, periodStart)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.budgets.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	upd := services.BudgetUpdate{
		CategoryID: req.CategoryID,
		LimitCents: req.LimitCents,
		Year:       req.Year,
		Month:      req.Month,
	}
	if req.Limit != "" {
		if req.LimitCents != nil {
			writeError(w, r, badRequestf("provide either limitCents or limit, not both"))
			return
		}
		cents, err := core.ParseDecimalToCents(req.Limit)
		if err != nil {
			writeError(w, r, badRequestf("invalid limit %q: %v", req.Limit, err))
			return
		}
		upd.LimitCents = &cents
	}

	b, err := s.budgets.Update(r.Context(), owner, r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.budgets.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
