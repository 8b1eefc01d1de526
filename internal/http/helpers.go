package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finbud/internal/core"
)

// errMissingOwner is returned when the X-User-ID header is absent.
var errMissingOwner = errors.New("missing X-User-ID header")

// ownerID resolves the calling owner from the X-User-ID header. Upstream
// auth terminates the session and injects the header.
func ownerID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return "", errMissingOwner
	}
	return id, nil
}

type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Guard rejections carry
// their figures in the details object so clients can render them.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound      *core.NotFoundError
		duplicate     *core.DuplicateBudgetError
		overAllocated *core.BudgetExceedsIncomeError
		noBudget      *core.NoBudgetAllocatedError
		overLimit     *core.BudgetLimitExceededError
	)

	switch {
	case errors.Is(err, errMissingOwner):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})

	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.As(err, &duplicate):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Details: map[string]any{
			"categoryId": duplicate.CategoryID,
			"period":     duplicate.PeriodLabel,
		}})

	case errors.As(err, &overAllocated):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Details: map[string]any{
			"totalIncomeCents":       overAllocated.TotalIncome.Cents,
			"existingAllocatedCents": overAllocated.ExistingAllocated.Cents,
			"requestedCents":         overAllocated.Requested.Cents,
			"projectedCents":         overAllocated.Projected.Cents,
		}})

	case errors.As(err, &noBudget):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Details: map[string]any{
			"categoryId": noBudget.CategoryID,
			"period":     noBudget.PeriodLabel,
		}})

	case errors.As(err, &overLimit):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Details: map[string]any{
			"limitCents":      overLimit.Limit.Cents,
			"totalSpentCents": overLimit.TotalSpent.Cents,
			"amountCents":     overLimit.Amount.Cents,
			"projectedCents":  overLimit.Projected.Cents,
			"exceededByCents": overLimit.ExceededBy.Cents,
		}})

	case isValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
		core.ErrInvalidMonth,
		core.ErrInvalidYear,
		core.ErrEmptyOwner,
		core.ErrEmptyCategory,
		core.ErrEmptyName,
		core.ErrInvalidType,
		core.ErrNegativeLimit,
		core.ErrNegativeBalance,
		core.ErrNegativeRate,
		core.ErrDescriptionTooLong,
		core.ErrEmptySubmission,
		core.ErrNotExpenseCategory,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// errBadRequest wraps malformed-input errors from the transport layer.
var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequestf("invalid JSON body: %v", err)
	}
	return nil
}

// parseYearMonth reads year and month query parameters, defaulting to the
// current month.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, badRequestf("invalid year %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, badRequestf("invalid month %q", v)
		}
	}
	return year, month, nil
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequestf("invalid %s %q", key, v)
	}
	return n, nil
}

func queryInt64(r *http.Request, key string, defaultValue int64) (int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, badRequestf("invalid %s %q", key, v)
	}
	return n, nil
}

func queryFloat(r *http.Request, key string, defaultValue float64) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, badRequestf("invalid %s %q", key, v)
	}
	return f, nil
}

// amountCents resolves a money amount from either an integer cents field or
// a decimal string ("12.34" or "12,34").
func amountCents(cents *int64, decimal string) (int64, error) {
	switch {
	case cents != nil && decimal != "":
		return 0, badRequestf("provide either a cents amount or a decimal amount, not both")
	case cents != nil:
		return *cents, nil
	case decimal != "":
		parsed, err := core.ParseDecimalToCents(decimal)
		if err != nil {
			return 0, badRequestf("invalid amount %q: %v", decimal, err)
		}
		return parsed, nil
	default:
		return 0, badRequestf("missing amount")
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, badRequestf("invalid date %q, want RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}
