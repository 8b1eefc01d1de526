package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "finbud.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsSeedReferenceData(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 15 {
		t.Fatalf("got %d categories, want 15", len(cats))
	}

	groceries, err := repo.GetCategory(ctx, "cat-groceries")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if groceries.Type != core.CategoryExpense || groceries.Name != "Groceries" {
		t.Errorf("unexpected category: %+v", groceries)
	}

	questions, err := repo.ListQuestions(ctx, "")
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}

	q, err := repo.GetQuestion(ctx, "q-index-fund")
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if len(q.Options) != 4 || q.CorrectAnswer != 0 {
		t.Errorf("options not decoded: %+v", q)
	}

	investing, err := repo.ListQuestions(ctx, "investing")
	if err != nil {
		t.Fatalf("ListQuestions(investing): %v", err)
	}
	if len(investing) != 3 {
		t.Errorf("got %d investing questions, want 3", len(investing))
	}
}

func TestBudgetRoundTripAndUniqueness(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	b := core.Budget{
		ID:          "b-1",
		OwnerID:     "user-1",
		CategoryID:  "cat-groceries",
		PeriodStart: march,
		Limit:       core.Money{Cents: 40000},
	}
	if err := repo.CreateBudget(ctx, b); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	got, err := repo.FindBudget(ctx, "user-1", "cat-groceries", march)
	if err != nil {
		t.Fatalf("FindBudget: %v", err)
	}
	if got.ID != "b-1" || !got.PeriodStart.Equal(march) || got.Limit.Cents != 40000 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	dup := b
	dup.ID = "b-2"
	if err := repo.CreateBudget(ctx, dup); err == nil {
		t.Error("expected unique constraint violation for same owner, category and period")
	}

	// Same category in another month is fine.
	dup.PeriodStart = march.AddDate(0, 1, 0)
	if err := repo.CreateBudget(ctx, dup); err != nil {
		t.Errorf("CreateBudget next month: %v", err)
	}

	var nf *core.NotFoundError
	_, err = repo.FindBudget(ctx, "user-1", "cat-rent", march)
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestSumBudgetLimitsExcludesID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i, tc := range []struct {
		id, cat string
		cents   int64
	}{
		{"b-1", "cat-groceries", 40000},
		{"b-2", "cat-rent", 90000},
		{"b-3", "cat-transport", 10000},
	} {
		b := core.Budget{ID: tc.id, OwnerID: "user-1", CategoryID: tc.cat, PeriodStart: march, Limit: core.Money{Cents: tc.cents}}
		if err := repo.CreateBudget(ctx, b); err != nil {
			t.Fatalf("CreateBudget %d: %v", i, err)
		}
	}
	// Another owner and another month must not count.
	other := core.Budget{ID: "b-x", OwnerID: "user-2", CategoryID: "cat-groceries", PeriodStart: march, Limit: core.Money{Cents: 777}}
	if err := repo.CreateBudget(ctx, other); err != nil {
		t.Fatalf("CreateBudget other owner: %v", err)
	}

	total, err := repo.SumBudgetLimits(ctx, "user-1", march, "")
	if err != nil {
		t.Fatalf("SumBudgetLimits: %v", err)
	}
	if total.Cents != 140000 {
		t.Errorf("total = %d, want 140000", total.Cents)
	}

	withoutRent, err := repo.SumBudgetLimits(ctx, "user-1", march, "b-2")
	if err != nil {
		t.Fatalf("SumBudgetLimits exclude: %v", err)
	}
	if withoutRent.Cents != 50000 {
		t.Errorf("excluding b-2 = %d, want 50000", withoutRent.Cents)
	}

	empty, err := repo.SumBudgetLimits(ctx, "user-3", march, "")
	if err != nil {
		t.Fatalf("SumBudgetLimits empty: %v", err)
	}
	if empty.Cents != 0 {
		t.Errorf("empty owner sum = %d, want 0", empty.Cents)
	}
}

func TestSumTransactionAmountsFilters(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	mk := func(id string, typ core.TransactionType, cat string, cents int64, day int) core.Transaction {
		return core.Transaction{
			ID: id, OwnerID: "user-1", CategoryID: cat, Type: typ,
			Amount: core.Money{Cents: cents},
			Date:   time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
		}
	}
	for _, tx := range []core.Transaction{
		mk("t-1", core.TransactionExpense, "cat-groceries", 2500, 3),
		mk("t-2", core.TransactionExpense, "cat-groceries", 1500, 20),
		mk("t-3", core.TransactionExpense, "cat-rent", 90000, 1),
		mk("t-4", core.TransactionIncome, "cat-salary", 300000, 1),
	} {
		if err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction %s: %v", tx.ID, err)
		}
	}
	// April expense must fall outside the March range.
	april := mk("t-5", core.TransactionExpense, "cat-groceries", 9999, 3)
	april.Date = april.Date.AddDate(0, 1, 0)
	if err := repo.CreateTransaction(ctx, april); err != nil {
		t.Fatalf("CreateTransaction t-5: %v", err)
	}

	period := core.PeriodOf(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	spent, err := repo.SumTransactionAmounts(ctx, "user-1", services.TransactionFilter{
		Type:       core.TransactionExpense,
		CategoryID: "cat-groceries",
		From:       period.Start,
		To:         period.End,
	})
	if err != nil {
		t.Fatalf("SumTransactionAmounts: %v", err)
	}
	if spent.Cents != 4000 {
		t.Errorf("grocery spend = %d, want 4000", spent.Cents)
	}

	income, err := repo.SumTransactionAmounts(ctx, "user-1", services.TransactionFilter{
		Type: core.TransactionIncome,
		From: period.Start,
		To:   period.End,
	})
	if err != nil {
		t.Fatalf("SumTransactionAmounts income: %v", err)
	}
	if income.Cents != 300000 {
		t.Errorf("income = %d, want 300000", income.Cents)
	}
}

func TestTransactionOwnershipScoping(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		ID: "t-1", OwnerID: "user-1", CategoryID: "cat-groceries",
		Type: core.TransactionExpense, Amount: core.Money{Cents: 1000},
		Date: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	var nf *core.NotFoundError
	if _, err := repo.GetTransaction(ctx, "user-2", "t-1"); !errors.As(err, &nf) {
		t.Errorf("foreign owner get: want NotFoundError, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, "user-2", "t-1"); !errors.As(err, &nf) {
		t.Errorf("foreign owner delete: want NotFoundError, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, "user-1", "t-1"); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

func TestAssetHistoryAppendOnly(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	day1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	a := core.Asset{
		ID: "a-1", OwnerID: "user-1", CategoryID: "cat-savings", Name: "Emergency Fund",
		CurrentValue: core.Money{Cents: 500000},
		ValueHistory: []core.ValueSnapshot{{Date: day1, Value: core.Money{Cents: 500000}}},
	}
	if err := repo.CreateAsset(ctx, a); err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	a.CurrentValue = core.Money{Cents: 520000}
	if err := repo.UpdateAsset(ctx, a); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	snap := core.ValueSnapshot{Date: day1.AddDate(0, 0, 30), Value: core.Money{Cents: 520000}}
	if err := repo.AppendAssetValue(ctx, "user-1", "a-1", snap); err != nil {
		t.Fatalf("AppendAssetValue: %v", err)
	}

	got, err := repo.GetAsset(ctx, "user-1", "a-1")
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got.CurrentValue.Cents != 520000 {
		t.Errorf("current value = %d, want 520000", got.CurrentValue.Cents)
	}
	if len(got.ValueHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(got.ValueHistory))
	}
	if got.ValueHistory[0].Value.Cents != 500000 || got.ValueHistory[1].Value.Cents != 520000 {
		t.Errorf("history out of order: %+v", got.ValueHistory)
	}

	var nf *core.NotFoundError
	if err := repo.AppendAssetValue(ctx, "user-2", "a-1", snap); !errors.As(err, &nf) {
		t.Errorf("foreign owner append: want NotFoundError, got %v", err)
	}

	if err := repo.DeleteAsset(ctx, "user-1", "a-1"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if _, err := repo.GetAsset(ctx, "user-1", "a-1"); !errors.As(err, &nf) {
		t.Errorf("deleted asset get: want NotFoundError, got %v", err)
	}
}

func TestDebtRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	d := core.Debt{
		ID: "d-1", OwnerID: "user-1", CategoryID: "cat-loan", Name: "Car Loan",
		OriginalAmount:   core.Money{Cents: 1500000},
		RemainingBalance: core.Money{Cents: 900000},
		InterestRate:     4.5,
		MinimumPayment:   core.Money{Cents: 25000},
		NextPaymentDate:  time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateDebt(ctx, d); err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}

	got, err := repo.GetDebt(ctx, "user-1", "d-1")
	if err != nil {
		t.Fatalf("GetDebt: %v", err)
	}
	if got.InterestRate != 4.5 || got.RemainingBalance.Cents != 900000 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.NextPaymentDate.Equal(d.NextPaymentDate) {
		t.Errorf("next payment = %v, want %v", got.NextPaymentDate, d.NextPaymentDate)
	}

	got.RemainingBalance = core.Money{Cents: 875000}
	if err := repo.UpdateDebt(ctx, got); err != nil {
		t.Fatalf("UpdateDebt: %v", err)
	}
	again, err := repo.GetDebt(ctx, "user-1", "d-1")
	if err != nil {
		t.Fatalf("GetDebt again: %v", err)
	}
	if again.RemainingBalance.Cents != 875000 {
		t.Errorf("balance = %d, want 875000", again.RemainingBalance.Cents)
	}

	debts, err := repo.ListDebts(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListDebts: %v", err)
	}
	if len(debts) != 1 {
		t.Errorf("got %d debts, want 1", len(debts))
	}
}
