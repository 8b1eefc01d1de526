package core

import (
	"errors"
	"fmt"
)

// ErrEmptySubmission rejects a quiz submission with no answers.
var ErrEmptySubmission = errors.New("submission contains no answers")

// ErrNotExpenseCategory rejects a budget pointed at a non-expense category.
var ErrNotExpenseCategory = errors.New("budgets require an expense category")

// NotFoundError marks a referenced record as absent. Kind names the record
// type ("budget", "transaction", "question", ...).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// DuplicateBudgetError rejects a second budget for the same owner, category
// and period.
type DuplicateBudgetError struct {
	CategoryID  string
	PeriodLabel string
}

func (e *DuplicateBudgetError) Error() string {
	return fmt.Sprintf("budget already exists for category %s in %s", e.CategoryID, e.PeriodLabel)
}

// BudgetExceedsIncomeError rejects a budget allocation that would push the
// period's total allocation past the period's income.
type BudgetExceedsIncomeError struct {
	TotalIncome       Money
	ExistingAllocated Money
	Requested         Money
	Projected         Money
}

func (e *BudgetExceedsIncomeError) Error() string {
	return fmt.Sprintf("total budget allocation %s would exceed period income %s (already allocated %s, requested %s)",
		e.Projected, e.TotalIncome, e.ExistingAllocated, e.Requested)
}

// NoBudgetAllocatedError rejects an expense in a category/period that has no
// budget.
type NoBudgetAllocatedError struct {
	CategoryID  string
	PeriodLabel string
}

func (e *NoBudgetAllocatedError) Error() string {
	return fmt.Sprintf("no budget allocated for category %s in %s", e.CategoryID, e.PeriodLabel)
}

// BudgetLimitExceededError rejects an expense that would push the category's
// period-to-date spend past the budget's hard limit.
type BudgetLimitExceededError struct {
	Limit      Money
	TotalSpent Money
	Amount     Money
	Projected  Money
	ExceededBy Money
}

func (e *BudgetLimitExceededError) Error() string {
	return fmt.Sprintf("expense of %s would exceed budget limit %s by %s (already spent %s)",
		e.Amount, e.Limit, e.ExceededBy, e.TotalSpent)
}
