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

// BudgetService enforces the allocation invariant: the sum of all budget
// limits a user sets for one period may never exceed that user's income
// transactions in the same period.
type BudgetService struct {
	ledger   Ledger
	notifier Notifier
	locks    *periodLocks
}

func NewBudgetService(ledger Ledger, notifier Notifier) *BudgetService {
	return &BudgetService{
		ledger:   ledger,
		notifier: notifier,
		locks:    newPeriodLocks(),
	}
}

// BudgetUpdate carries the mutable budget fields. Nil means "keep".
type BudgetUpdate struct {
	CategoryID *string
	LimitCents *int64
	Year       *int
	Month      *int
}

// Create validates and persists a new budget for (owner, category, period).
//
// Rejections, in order: duplicate budget for the triple, then projected
// allocation (existing budgets plus the requested limit) strictly exceeding
// the period's income. A zero limit therefore always passes, and allocating
// exactly up to the income is allowed.
func (s *BudgetService) Create(ctx context.Context, ownerID, categoryID string, year, month int, limit core.Money) (core.Budget, error) {
	if err := core.ValidateYearMonth(year, month); err != nil {
		return core.Budget{}, err
	}
	if err := s.checkExpenseCategory(ctx, categoryID); err != nil {
		return core.Budget{}, err
	}

	period := core.ResolvePeriod(year, month)

	unlock := s.locks.acquire(allocationKey(ownerID, period.Start))
	defer unlock()

	_, err := s.ledger.FindBudget(ctx, ownerID, categoryID, period.Start)
	if err == nil {
		return core.Budget{}, &core.DuplicateBudgetError{
			CategoryID:  categoryID,
			PeriodLabel: period.Label(),
		}
	}
	var nf *core.NotFoundError
	if !errors.As(err, &nf) {
		return core.Budget{}, fmt.Errorf("find existing budget: %w", err)
	}

	if err := s.checkAllocation(ctx, ownerID, period, limit, ""); err != nil {
		return core.Budget{}, err
	}

	b := core.Budget{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		PeriodStart: period.Start,
		Limit:       limit,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.ledger.CreateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget created",
		"budget_id", b.ID,
		"owner_id", ownerID,
		"category_id", categoryID,
		"period", period.Label(),
		"limit_cents", limit.Cents)

	s.emit(ctx, b, notify.ActionCreated)
	return b, nil
}

// Update re-validates the allocation invariant for the budget's (possibly
// new) period, excluding the budget itself from the allocated sum so it
// never counts against its own limit. Unlike Create there is no duplicate
// check: the budget keeps its identity.
func (s *BudgetService) Update(ctx context.Context, ownerID, id string, upd BudgetUpdate) (core.Budget, error) {
	existing, err := s.ledger.GetBudget(ctx, ownerID, id)
	if err != nil {
		return core.Budget{}, err
	}

	categoryID := existing.CategoryID
	if upd.CategoryID != nil {
		categoryID = *upd.CategoryID
		if err := s.checkExpenseCategory(ctx, categoryID); err != nil {
			return core.Budget{}, err
		}
	}

	year := existing.PeriodStart.Year()
	month := int(existing.PeriodStart.Month())
	if upd.Year != nil {
		year = *upd.Year
	}
	if upd.Month != nil {
		month = *upd.Month
	}
	if err := core.ValidateYearMonth(year, month); err != nil {
		return core.Budget{}, err
	}
	period := core.ResolvePeriod(year, month)

	limit := existing.Limit
	if upd.LimitCents != nil {
		limit = core.Money{Cents: *upd.LimitCents}
	}

	unlock := s.locks.acquire(allocationKey(ownerID, period.Start))
	defer unlock()

	if err := s.checkAllocation(ctx, ownerID, period, limit, id); err != nil {
		return core.Budget{}, err
	}

	b := core.Budget{
		ID:          id,
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		PeriodStart: period.Start,
		Limit:       limit,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.ledger.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget updated",
		"budget_id", b.ID,
		"owner_id", ownerID,
		"period", period.Label(),
		"limit_cents", limit.Cents)

	s.emit(ctx, b, notify.ActionUpdated)
	return b, nil
}

// Delete removes an owned budget. Transactions never reference budgets, so
// no cross-invariant applies on delete.
func (s *BudgetService) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := s.ledger.GetBudget(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.ledger.DeleteBudget(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.emit(ctx, existing, notify.ActionDeleted)
	return nil
}

// Get returns an owned budget.
func (s *BudgetService) Get(ctx context.Context, ownerID, id string) (core.Budget, error) {
	return s.ledger.GetBudget(ctx, ownerID, id)
}

// List returns the owner's budgets, optionally narrowed to one period.
func (s *BudgetService) List(ctx context.Context, ownerID string, periodStart time.Time) ([]core.Budget, error) {
	budgets, err := s.ledger.ListBudgets(ctx, ownerID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// checkAllocation compares the projected allocation for the period against
// the period's income. excludeID removes the budget being updated from the
// allocated sum; empty on create.
func (s *BudgetService) checkAllocation(ctx context.Context, ownerID string, period core.Period, requested core.Money, excludeID string) error {
	income, err := s.ledger.SumTransactionAmounts(ctx, ownerID, TransactionFilter{
		Type: core.TransactionIncome,
		From: period.Start,
		To:   period.End,
	})
	if err != nil {
		return fmt.Errorf("sum period income: %w", err)
	}

	allocated, err := s.ledger.SumBudgetLimits(ctx, ownerID, period.Start, excludeID)
	if err != nil {
		return fmt.Errorf("sum allocated budgets: %w", err)
	}

	projected := allocated.Add(requested)
	if projected.GreaterThan(income) {
		return &core.BudgetExceedsIncomeError{
			TotalIncome:       income,
			ExistingAllocated: allocated,
			Requested:         requested,
			Projected:         projected,
		}
	}
	return nil
}

func (s *BudgetService) checkExpenseCategory(ctx context.Context, categoryID string) error {
	cat, err := s.ledger.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat.Type != core.CategoryExpense {
		return core.ErrNotExpenseCategory
	}
	return nil
}

func (s *BudgetService) emit(ctx context.Context, b core.Budget, action string) {
	if s.notifier == nil {
		return
	}
	payload := notify.BudgetEvent{
		BudgetID:    b.ID,
		CategoryID:  b.CategoryID,
		LimitCents:  b.Limit.Cents,
		PeriodLabel: core.PeriodOf(b.PeriodStart).Label(),
		Action:      action,
	}
	s.notifier.Notify(ctx, b.OwnerID, notify.EventBudgetUpdate, payload)
	s.notifier.Notify(ctx, b.OwnerID, notify.EventDashboardUpdate, payload)
}

func allocationKey(ownerID string, periodStart time.Time) string {
	return "alloc|" + ownerID + "|" + periodStart.Format("2006-01")
}
