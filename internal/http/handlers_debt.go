package http

import (
	"net/http"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"
)

type createDebtRequest struct {
	CategoryID           string  `json:"categoryId"`
	Name                 string  `json:"name"`
	OriginalAmountCents  int64   `json:"originalAmountCents"`
	RemainingBalanceCents int64  `json:"remainingBalanceCents"`
	InterestRate         float64 `json:"interestRate"`
	MinimumPaymentCents  int64   `json:"minimumPaymentCents,omitempty"`
	NextPaymentDate      string  `json:"nextPaymentDate,omitempty"`
}

type updateDebtRequest struct {
	Name                  *string  `json:"name,omitempty"`
	RemainingBalanceCents *int64   `json:"remainingBalanceCents,omitempty"`
	InterestRate          *float64 `json:"interestRate,omitempty"`
	MinimumPaymentCents   *int64   `json:"minimumPaymentCents,omitempty"`
	NextPaymentDate       *string  `json:"nextPaymentDate,omitempty"`
}

type debtResponse struct {
	ID                    string  `json:"id"`
	CategoryID            string  `json:"categoryId"`
	Name                  string  `json:"name"`
	OriginalAmountCents   int64   `json:"originalAmountCents"`
	RemainingBalanceCents int64   `json:"remainingBalanceCents"`
	InterestRate          float64 `json:"interestRate"`
	MinimumPaymentCents   int64   `json:"minimumPaymentCents"`
	NextPaymentDate       string  `json:"nextPaymentDate,omitempty"`
}

func toDebtResponse(d core.Debt) debtResponse {
	resp := debtResponse{
		ID:                    d.ID,
		CategoryID:            d.CategoryID,
		Name:                  d.Name,
		OriginalAmountCents:   d.OriginalAmount.Cents,
		RemainingBalanceCents: d.RemainingBalance.Cents,
		InterestRate:          d.InterestRate,
		MinimumPaymentCents:   d.MinimumPayment.Cents,
	}
	if !d.NextPaymentDate.IsZero() {
		resp.NextPaymentDate = d.NextPaymentDate.UTC().Format("2006-01-02")
	}
	return resp
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	debt := core.Debt{
		OwnerID:          owner,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		OriginalAmount:   core.Money{Cents: req.OriginalAmountCents},
		RemainingBalance: core.Money{Cents: req.RemainingBalanceCents},
		InterestRate:     req.InterestRate,
		MinimumPayment:   core.Money{Cents: req.MinimumPaymentCents},
	}
	if req.NextPaymentDate != "" {
		date, err := parseDate(req.NextPaymentDate)
		if err != nil {
			writeError(w, r, err)
			return
		}
		debt.NextPaymentDate = date
	}

	d, err := s.debts.Create(r.Context(), debt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDebtResponse(d))
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	debts, err := s.debts.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.debts.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(d))
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	upd := services.DebtUpdate{
		Name:                  req.Name,
		RemainingBalanceCents: req.RemainingBalanceCents,
		InterestRate:          req.InterestRate,
		MinimumPaymentCents:   req.MinimumPaymentCents,
	}
	if req.NextPaymentDate != nil {
		var date time.Time
		if *req.NextPaymentDate != "" {
			parsed, err := parseDate(*req.NextPaymentDate)
			if err != nil {
				writeError(w, r, err)
				return
			}
			date = parsed
		}
		upd.NextPaymentDate = &date
	}

	d, err := s.debts.Update(r.Context(), owner, r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(d))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.debts.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
