package services

import (
	"context"
	"sync"
	"time"

	"finbud/internal/core"
)

// fakeLedger is an in-memory Ledger for service tests.
type fakeLedger struct {
	mu           sync.Mutex
	categories   map[string]core.Category
	budgets      map[string]core.Budget
	transactions map[string]core.Transaction
	assets       map[string]core.Asset
	snapshots    map[string][]core.ValueSnapshot
	debts        map[string]core.Debt
	questions    []core.QuizQuestion
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		categories:   make(map[string]core.Category),
		budgets:      make(map[string]core.Budget),
		transactions: make(map[string]core.Transaction),
		assets:       make(map[string]core.Asset),
		snapshots:    make(map[string][]core.ValueSnapshot),
		debts:        make(map[string]core.Debt),
	}
}

func (f *fakeLedger) addCategory(id string, typ core.CategoryType) {
	f.categories[id] = core.Category{ID: id, Name: id, Type: typ}
}

func (f *fakeLedger) addQuestion(q core.QuizQuestion) {
	f.questions = append(f.questions, q)
}

func (f *fakeLedger) CreateTransaction(_ context.Context, tx core.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeLedger) GetTransaction(_ context.Context, ownerID, id string) (core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return core.Transaction{}, &core.NotFoundError{Kind: "transaction", ID: id}
	}
	return tx, nil
}

func (f *fakeLedger) UpdateTransaction(_ context.Context, tx core.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeLedger) DeleteTransaction(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.transactions, id)
	return nil
}

func (f *fakeLedger) ListTransactions(_ context.Context, ownerID string, filter TransactionFilter) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Transaction
	for _, tx := range f.transactions {
		if tx.OwnerID == ownerID && matches(tx, filter) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeLedger) SumTransactionAmounts(_ context.Context, ownerID string, filter TransactionFilter) (core.Money, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, tx := range f.transactions {
		if tx.OwnerID == ownerID && matches(tx, filter) {
			sum += tx.Amount.Cents
		}
	}
	return core.Money{Cents: sum}, nil
}

func matches(tx core.Transaction, f TransactionFilter) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && tx.CategoryID != f.CategoryID {
		return false
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	return true
}

func (f *fakeLedger) CreateBudget(_ context.Context, b core.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgets[b.ID] = b
	return nil
}

func (f *fakeLedger) GetBudget(_ context.Context, ownerID, id string) (core.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: id}
	}
	return b, nil
}

func (f *fakeLedger) UpdateBudget(_ context.Context, b core.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgets[b.ID] = b
	return nil
}

func (f *fakeLedger) DeleteBudget(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.budgets, id)
	return nil
}

func (f *fakeLedger) ListBudgets(_ context.Context, ownerID string, periodStart time.Time) ([]core.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Budget
	for _, b := range f.budgets {
		if b.OwnerID != ownerID {
			continue
		}
		if !periodStart.IsZero() && !b.PeriodStart.Equal(periodStart) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeLedger) FindBudget(_ context.Context, ownerID, categoryID string, periodStart time.Time) (core.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.budgets {
		if b.OwnerID == ownerID && b.CategoryID == categoryID && b.PeriodStart.Equal(periodStart) {
			return b, nil
		}
	}
	return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: categoryID}
}

func (f *fakeLedger) SumBudgetLimits(_ context.Context, ownerID string, periodStart time.Time, excludeID string) (core.Money, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, b := range f.budgets {
		if b.OwnerID == ownerID && b.PeriodStart.Equal(periodStart) && b.ID != excludeID {
			sum += b.Limit.Cents
		}
	}
	return core.Money{Cents: sum}, nil
}

func (f *fakeLedger) CreateAsset(_ context.Context, a core.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets[a.ID] = a
	f.snapshots[a.ID] = append([]core.ValueSnapshot(nil), a.ValueHistory...)
	return nil
}

func (f *fakeLedger) GetAsset(_ context.Context, ownerID, id string) (core.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assets[id]
	if !ok || a.OwnerID != ownerID {
		return core.Asset{}, &core.NotFoundError{Kind: "asset", ID: id}
	}
	a.ValueHistory = append([]core.ValueSnapshot(nil), f.snapshots[id]...)
	return a, nil
}

func (f *fakeLedger) UpdateAsset(_ context.Context, a core.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets[a.ID] = a
	return nil
}

func (f *fakeLedger) AppendAssetValue(_ context.Context, _, id string, snap core.ValueSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[id] = append(f.snapshots[id], snap)
	return nil
}

func (f *fakeLedger) DeleteAsset(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.assets, id)
	delete(f.snapshots, id)
	return nil
}

func (f *fakeLedger) ListAssets(_ context.Context, ownerID string) ([]core.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Asset
	for _, a := range f.assets {
		if a.OwnerID == ownerID {
			a.ValueHistory = append([]core.ValueSnapshot(nil), f.snapshots[a.ID]...)
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeLedger) CreateDebt(_ context.Context, d core.Debt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debts[d.ID] = d
	return nil
}

func (f *fakeLedger) GetDebt(_ context.Context, ownerID, id string) (core.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.debts[id]
	if !ok || d.OwnerID != ownerID {
		return core.Debt{}, &core.NotFoundError{Kind: "debt", ID: id}
	}
	return d, nil
}

func (f *fakeLedger) UpdateDebt(_ context.Context, d core.Debt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debts[d.ID] = d
	return nil
}

func (f *fakeLedger) DeleteDebt(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.debts, id)
	return nil
}

func (f *fakeLedger) ListDebts(_ context.Context, ownerID string) ([]core.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Debt
	for _, d := range f.debts {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeLedger) GetCategory(_ context.Context, id string) (core.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return core.Category{}, &core.NotFoundError{Kind: "category", ID: id}
	}
	return c, nil
}

func (f *fakeLedger) ListCategories(_ context.Context) ([]core.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeLedger) GetQuestion(_ context.Context, id string) (core.QuizQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return core.QuizQuestion{}, &core.NotFoundError{Kind: "question", ID: id}
}

func (f *fakeLedger) ListQuestions(_ context.Context, category string) ([]core.QuizQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.QuizQuestion
	for _, q := range f.questions {
		if category == "" || q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	OwnerID string
	Event   string
	Payload any
}

func (r *recordingNotifier) Notify(_ context.Context, ownerID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{OwnerID: ownerID, Event: event, Payload: payload})
}

func (r *recordingNotifier) recorded() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}
