package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finbud/internal/core"
	"finbud/internal/notify"
)

// TransactionService gates expense creation behind the overspend guard: an
// expense needs a budget for its category and month, and may not push the
// category's month-to-date spend past that budget's limit. Income
// transactions are created unconditionally. Updates and deletes are
// ownership-checked only; they do not re-run the guard.
type TransactionService struct {
	ledger   Ledger
	notifier Notifier
	locks    *periodLocks
}

func NewTransactionService(ledger Ledger, notifier Notifier) *TransactionService {
	return &TransactionService{
		ledger:   ledger,
		notifier: notifier,
		locks:    newPeriodLocks(),
	}
}

// TransactionUpdate carries the mutable transaction fields. Nil means "keep".
type TransactionUpdate struct {
	CategoryID  *string
	Type        *core.TransactionType
	AmountCents *int64
	Date        *time.Time
	Description *string
}

// Create persists a transaction. For expenses the budget-existence and
// hard-limit checks run first, serialized per (owner, category, period) so
// two racing expenses cannot jointly overshoot the limit within one process.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if _, err := s.ledger.GetCategory(ctx, tx.CategoryID); err != nil {
		return core.Transaction{}, err
	}

	tx.ID = uuid.NewString()

	if tx.Type == core.TransactionExpense {
		period := core.PeriodOf(tx.Date)

		unlock := s.locks.acquire(spendKey(tx.OwnerID, tx.CategoryID, period.Start))
		defer unlock()

		if err := s.validateExpense(ctx, tx, period); err != nil {
			return core.Transaction{}, err
		}
		if err := s.ledger.CreateTransaction(ctx, tx); err != nil {
			return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
		}
	} else {
		if err := s.ledger.CreateTransaction(ctx, tx); err != nil {
			return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
		}
	}

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", tx.ID,
		"owner_id", tx.OwnerID,
		"type", string(tx.Type),
		"category_id", tx.CategoryID,
		"amount_cents", tx.Amount.Cents)

	s.emit(ctx, tx, notify.ActionCreated)
	return tx, nil
}

// validateExpense runs the two overspend checks for tx's calendar month.
func (s *TransactionService) validateExpense(ctx context.Context, tx core.Transaction, period core.Period) error {
	budget, err := s.ledger.FindBudget(ctx, tx.OwnerID, tx.CategoryID, period.Start)
	var nf *core.NotFoundError
	if errors.As(err, &nf) {
		return &core.NoBudgetAllocatedError{
			CategoryID:  tx.CategoryID,
			PeriodLabel: period.Label(),
		}
	}
	if err != nil {
		return fmt.Errorf("find budget: %w", err)
	}

	spent, err := s.ledger.SumTransactionAmounts(ctx, tx.OwnerID, TransactionFilter{
		Type:       core.TransactionExpense,
		CategoryID: tx.CategoryID,
		From:       period.Start,
		To:         period.End,
	})
	if err != nil {
		return fmt.Errorf("sum period spend: %w", err)
	}

	projected := spent.Add(tx.Amount)
	if projected.GreaterThan(budget.Limit) {
		return &core.BudgetLimitExceededError{
			Limit:      budget.Limit,
			TotalSpent: spent,
			Amount:     tx.Amount,
			Projected:  projected,
			ExceededBy: projected.Sub(budget.Limit),
		}
	}
	return nil
}

// Update applies field changes to an owned transaction. The overspend guard
// deliberately does not re-run here: only creation is gated.
func (s *TransactionService) Update(ctx context.Context, ownerID, id string, upd TransactionUpdate) (core.Transaction, error) {
	tx, err := s.ledger.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return core.Transaction{}, err
	}

	if upd.CategoryID != nil {
		if _, err := s.ledger.GetCategory(ctx, *upd.CategoryID); err != nil {
			return core.Transaction{}, err
		}
		tx.CategoryID = *upd.CategoryID
	}
	if upd.Type != nil {
		tx.Type = *upd.Type
	}
	if upd.AmountCents != nil {
		tx.Amount = core.Money{Cents: *upd.AmountCents}
	}
	if upd.Date != nil {
		tx.Date = *upd.Date
	}
	if upd.Description != nil {
		tx.Description = *upd.Description
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.ledger.UpdateTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.emit(ctx, tx, notify.ActionUpdated)
	return tx, nil
}

// Delete removes an owned transaction without re-checking budget invariants.
func (s *TransactionService) Delete(ctx context.Context, ownerID, id string) error {
	tx, err := s.ledger.GetTransaction(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.ledger.DeleteTransaction(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.emit(ctx, tx, notify.ActionDeleted)
	return nil
}

// Get returns an owned transaction.
func (s *TransactionService) Get(ctx context.Context, ownerID, id string) (core.Transaction, error) {
	return s.ledger.GetTransaction(ctx, ownerID, id)
}

// List returns the owner's transactions matching the filter.
func (s *TransactionService) List(ctx context.Context, ownerID string, f TransactionFilter) ([]core.Transaction, error) {
	txs, err := s.ledger.ListTransactions(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// emit pushes the three UI refresh events for a transaction mutation.
// Delivery is best-effort; the mutation has already committed.
func (s *TransactionService) emit(ctx context.Context, tx core.Transaction, action string) {
	if s.notifier == nil {
		return
	}
	payload := notify.TransactionEvent{
		TransactionID: tx.ID,
		Type:          string(tx.Type),
		AmountCents:   tx.Amount.Cents,
		Action:        action,
	}
	s.notifier.Notify(ctx, tx.OwnerID, notify.EventBudgetUpdate, payload)
	s.notifier.Notify(ctx, tx.OwnerID, notify.EventTransactionUpdate, payload)
	s.notifier.Notify(ctx, tx.OwnerID, notify.EventDashboardUpdate, payload)
}

func spendKey(ownerID, categoryID string, periodStart time.Time) string {
	return "spend|" + ownerID + "|" + categoryID + "|" + periodStart.Format("2006-01")
}
