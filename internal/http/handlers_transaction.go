package http

import (
	"net/http"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"
)

type createTransactionRequest struct {
	CategoryID  string `json:"categoryId"`
	Type        string `json:"type"`
	AmountCents *int64 `json:"amountCents,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

type updateTransactionRequest struct {
	CategoryID  *string `json:"categoryId,omitempty"`
	Type        *string `json:"type,omitempty"`
	AmountCents *int64  `json:"amountCents,omitempty"`
	Amount      string  `json:"amount,omitempty"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amountCents"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		CategoryID:  tx.CategoryID,
		Type:        string(tx.Type),
		AmountCents: tx.Amount.Cents,
		Date:        tx.Date.UTC().Format(time.RFC3339),
		Description: tx.Description,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cents, err := amountCents(req.AmountCents, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := s.transactions.Create(r.Context(), core.Transaction{
		OwnerID:     owner,
		CategoryID:  req.CategoryID,
		Type:        core.TransactionType(req.Type),
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := services.TransactionFilter{
		Type:       core.TransactionType(r.URL.Query().Get("type")),
		CategoryID: r.URL.Query().Get("categoryId"),
	}
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
		period := core.ResolvePeriod(year, month)
		filter.From = period.Start
		filter.To = period.End
	}

	transactions, err := s.transactions.List(r.Context(), owner, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tx, err := s.transactions.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	upd := services.TransactionUpdate{
		CategoryID:  req.CategoryID,
		AmountCents: req.AmountCents,
		Description: req.Description,
	}
	if req.Type != nil {
		typ := core.TransactionType(*req.Type)
		upd.Type = &typ
	}
	if req.Amount != "" {
		if req.AmountCents != nil {
			writeError(w, r, badRequestf("provide either amountCents or amount, not both"))
			return
		}
		cents, err := core.ParseDecimalToCents(req.Amount)
		if err != nil {
			writeError(w, r, badRequestf("invalid amount %q: %v", req.Amount, err))
			return
		}
		upd.AmountCents = &cents
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Date = &date
	}

	tx, err := s.transactions.Update(r.Context(), owner, r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.transactions.Delete(r.Context(), owner, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
