// Package services holds the business rules that guard mutations: the
// budget allocation invariant, the expense overspend invariant, and the quiz
// scoring state machine. Services fetch fresh state from a Ledger on every
// call and emit best-effort notifications on success.
package services

import (
	"context"
	"time"

	"finbud/internal/core"
)

// TransactionFilter narrows transaction lookups and sums. Zero values mean
// "any".
type TransactionFilter struct {
	Type       core.TransactionType
	CategoryID string
	From       time.Time
	To         time.Time
}

// TransactionLedger persists transactions and answers the aggregate queries
// the guards run. Sum queries return zero, not an error, when nothing
// matches.
type TransactionLedger interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) error
	GetTransaction(ctx context.Context, ownerID, id string) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	ListTransactions(ctx context.Context, ownerID string, f TransactionFilter) ([]core.Transaction, error)
	SumTransactionAmounts(ctx context.Context, ownerID string, f TransactionFilter) (core.Money, error)
}

// BudgetLedger persists budgets. FindBudget and GetBudget return a
// *core.NotFoundError when no row matches.
type BudgetLedger interface {
	CreateBudget(ctx context.Context, b core.Budget) error
	GetBudget(ctx context.Context, ownerID, id string) (core.Budget, error)
	UpdateBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, ownerID, id string) error
	ListBudgets(ctx context.Context, ownerID string, periodStart time.Time) ([]core.Budget, error)
	FindBudget(ctx context.Context, ownerID, categoryID string, periodStart time.Time) (core.Budget, error)
	SumBudgetLimits(ctx context.Context, ownerID string, periodStart time.Time, excludeID string) (core.Money, error)
}

// AssetLedger persists assets together with their append-only value history.
type AssetLedger interface {
	CreateAsset(ctx context.Context, a core.Asset) error
	GetAsset(ctx context.Context, ownerID, id string) (core.Asset, error)
	UpdateAsset(ctx context.Context, a core.Asset) error
	AppendAssetValue(ctx context.Context, ownerID, id string, snap core.ValueSnapshot) error
	DeleteAsset(ctx context.Context, ownerID, id string) error
	ListAssets(ctx context.Context, ownerID string) ([]core.Asset, error)
}

// DebtLedger persists debts.
type DebtLedger interface {
	CreateDebt(ctx context.Context, d core.Debt) error
	GetDebt(ctx context.Context, ownerID, id string) (core.Debt, error)
	UpdateDebt(ctx context.Context, d core.Debt) error
	DeleteDebt(ctx context.Context, ownerID, id string) error
	ListDebts(ctx context.Context, ownerID string) ([]core.Debt, error)
}

// CategoryStore reads seeded category reference data.
type CategoryStore interface {
	GetCategory(ctx context.Context, id string) (core.Category, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
}

// QuestionStore reads admin-managed quiz questions.
type QuestionStore interface {
	GetQuestion(ctx context.Context, id string) (core.QuizQuestion, error)
	ListQuestions(ctx context.Context, category string) ([]core.QuizQuestion, error)
}

// Ledger is the full persistence surface, implemented by the SQLite and
// MongoDB repositories.
type Ledger interface {
	TransactionLedger
	BudgetLedger
	AssetLedger
	DebtLedger
	CategoryStore
	QuestionStore
}

// Notifier delivers user-facing events. Delivery is fire-and-forget: a
// failed or absent notifier never fails the mutation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, ownerID, event string, payload any)
}
