// Package storage is the SQLite ledger. All monetary columns hold integer
// cents; transaction instants are unix milliseconds and budget periods are
// stored as their first-of-month date string, so period lookups are exact
// key matches.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// Compile-time check that the repository covers the full ledger surface.
var _ services.Ledger = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func periodKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func periodFromKey(key string) time.Time {
	t, _ := time.Parse("2006-01-02", key)
	return t
}

// --- transactions ---

func (r *Repository) CreateTransaction(ctx context.Context, tx core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, category_id, type, amount_cents, date_unix_ms, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.OwnerID, tx.CategoryID, string(tx.Type), tx.Amount.Cents, tx.Date.UnixMilli(), tx.Description)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, ownerID, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, category_id, type, amount_cents, date_unix_ms, description
		 FROM transactions WHERE id = ? AND owner_id = ?`, id, ownerID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, &core.NotFoundError{Kind: "transaction", ID: id}
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, type = ?, amount_cents = ?, date_unix_ms = ?, description = ?
		 WHERE id = ? AND owner_id = ?`,
		tx.CategoryID, string(tx.Type), tx.Amount.Cents, tx.Date.UnixMilli(), tx.Description, tx.ID, tx.OwnerID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, "transaction", tx.ID)
}

func (r *Repository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, "transaction", id)
}

func (r *Repository) ListTransactions(ctx context.Context, ownerID string, f services.TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT id, owner_id, category_id, type, amount_cents, date_unix_ms, description
		FROM transactions WHERE owner_id = ?`
	args := []any{ownerID}
	query, args = appendFilter(query, args, f)
	query += ` ORDER BY date_unix_ms DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// SumTransactionAmounts aggregates store-side; no matching rows yield zero.
func (r *Repository) SumTransactionAmounts(ctx context.Context, ownerID string, f services.TransactionFilter) (core.Money, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE owner_id = ?`
	args := []any{ownerID}
	query, args = appendFilter(query, args, f)

	var cents int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return core.Money{}, fmt.Errorf("sum transactions: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func appendFilter(query string, args []any, f services.TransactionFilter) (string, []any) {
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if !f.From.IsZero() {
		query += ` AND date_unix_ms >= ?`
		args = append(args, f.From.UnixMilli())
	}
	if !f.To.IsZero() {
		query += ` AND date_unix_ms <= ?`
		args = append(args, f.To.UnixMilli())
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx     core.Transaction
		typ    string
		cents  int64
		dateMS int64
	)
	err := row.Scan(&tx.ID, &tx.OwnerID, &tx.CategoryID, &typ, &cents, &dateMS, &tx.Description)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TransactionType(typ)
	tx.Amount = core.Money{Cents: cents}
	tx.Date = time.UnixMilli(dateMS).UTC()
	return tx, nil
}

// --- budgets ---

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, owner_id, category_id, period_start, limit_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.CategoryID, periodKey(b.PeriodStart), b.Limit.Cents)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, ownerID, id string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, category_id, period_start, limit_cents
		 FROM budgets WHERE id = ? AND owner_id = ?`, id, ownerID)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: id}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (r *Repository) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category_id = ?, period_start = ?, limit_cents = ?
		 WHERE id = ? AND owner_id = ?`,
		b.CategoryID, periodKey(b.PeriodStart), b.Limit.Cents, b.ID, b.OwnerID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res, "budget", b.ID)
}

func (r *Repository) DeleteBudget(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res, "budget", id)
}

func (r *Repository) ListBudgets(ctx context.Context, ownerID string, periodStart time.Time) ([]core.Budget, error) {
	query := `SELECT id, owner_id, category_id, period_start, limit_cents FROM budgets WHERE owner_id = ?`
	args := []any{ownerID}
	if !periodStart.IsZero() {
		query += ` AND period_start = ?`
		args = append(args, periodKey(periodStart))
	}
	query += ` ORDER BY period_start DESC, category_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) FindBudget(ctx context.Context, ownerID, categoryID string, periodStart time.Time) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, category_id, period_start, limit_cents
		 FROM budgets WHERE owner_id = ? AND category_id = ? AND period_start = ?`,
		ownerID, categoryID, periodKey(periodStart))
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: categoryID + "/" + periodKey(periodStart)}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("find budget: %w", err)
	}
	return b, nil
}

func (r *Repository) SumBudgetLimits(ctx context.Context, ownerID string, periodStart time.Time, excludeID string) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(limit_cents), 0) FROM budgets
		 WHERE owner_id = ? AND period_start = ? AND id <> ?`,
		ownerID, periodKey(periodStart), excludeID).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum budget limits: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b      core.Budget
		period string
		cents  int64
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &b.CategoryID, &period, &cents); err != nil {
		return core.Budget{}, err
	}
	b.PeriodStart = periodFromKey(period)
	b.Limit = core.Money{Cents: cents}
	return b, nil
}

// --- assets ---

func (r *Repository) CreateAsset(ctx context.Context, a core.Asset) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbtx.Rollback()

	_, err = dbtx.ExecContext(ctx,
		`INSERT INTO assets (id, owner_id, category_id, name, current_value_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.CategoryID, a.Name, a.CurrentValue.Cents)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	for _, snap := range a.ValueHistory {
		_, err = dbtx.ExecContext(ctx,
			`INSERT INTO asset_value_history (asset_id, date_unix_ms, value_cents) VALUES (?, ?, ?)`,
			a.ID, snap.Date.UnixMilli(), snap.Value.Cents)
		if err != nil {
			return fmt.Errorf("insert asset snapshot: %w", err)
		}
	}
	return dbtx.Commit()
}

func (r *Repository) GetAsset(ctx context.Context, ownerID, id string) (core.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, category_id, name, current_value_cents
		 FROM assets WHERE id = ? AND owner_id = ?`, id, ownerID)

	var (
		a     core.Asset
		cents int64
	)
	err := row.Scan(&a.ID, &a.OwnerID, &a.CategoryID, &a.Name, &cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Asset{}, &core.NotFoundError{Kind: "asset", ID: id}
	}
	if err != nil {
		return core.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	a.CurrentValue = core.Money{Cents: cents}

	a.ValueHistory, err = r.assetHistory(ctx, id)
	if err != nil {
		return core.Asset{}, err
	}
	return a, nil
}

func (r *Repository) assetHistory(ctx context.Context, assetID string) ([]core.ValueSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date_unix_ms, value_cents FROM asset_value_history WHERE asset_id = ? ORDER BY id`, assetID)
	if err != nil {
		return nil, fmt.Errorf("load asset history: %w", err)
	}
	defer rows.Close()

	var out []core.ValueSnapshot
	for rows.Next() {
		var dateMS, cents int64
		if err := rows.Scan(&dateMS, &cents); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, core.ValueSnapshot{
			Date:  time.UnixMilli(dateMS).UTC(),
			Value: core.Money{Cents: cents},
		})
	}
	return out, rows.Err()
}

func (r *Repository) UpdateAsset(ctx context.Context, a core.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET category_id = ?, name = ?, current_value_cents = ?
		 WHERE id = ? AND owner_id = ?`,
		a.CategoryID, a.Name, a.CurrentValue.Cents, a.ID, a.OwnerID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireRow(res, "asset", a.ID)
}

// AppendAssetValue inserts a history row; existing snapshots are never
// touched.
func (r *Repository) AppendAssetValue(ctx context.Context, ownerID, id string, snap core.ValueSnapshot) error {
	if _, err := r.GetAsset(ctx, ownerID, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO asset_value_history (asset_id, date_unix_ms, value_cents) VALUES (?, ?, ?)`,
		id, snap.Date.UnixMilli(), snap.Value.Cents)
	if err != nil {
		return fmt.Errorf("append asset value: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assets WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if err := requireRow(res, "asset", id); err != nil {
		return err
	}
	// History rows cascade, but sqlite only enforces that with foreign
	// keys on; delete explicitly.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM asset_value_history WHERE asset_id = ?`, id); err != nil {
		return fmt.Errorf("delete asset history: %w", err)
	}
	return nil
}

func (r *Repository) ListAssets(ctx context.Context, ownerID string) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, category_id, name, current_value_cents FROM assets WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []core.Asset
	for rows.Next() {
		var (
			a     core.Asset
			cents int64
		)
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.CategoryID, &a.Name, &cents); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.CurrentValue = core.Money{Cents: cents}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].ValueHistory, err = r.assetHistory(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// --- debts ---

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, owner_id, category_id, name, original_cents, remaining_cents, interest_rate, minimum_payment_cents, next_payment_unix_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OwnerID, d.CategoryID, d.Name, d.OriginalAmount.Cents, d.RemainingBalance.Cents,
		d.InterestRate, d.MinimumPayment.Cents, unixMilliOrZero(d.NextPaymentDate))
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *Repository) GetDebt(ctx context.Context, ownerID, id string) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, category_id, name, original_cents, remaining_cents, interest_rate, minimum_payment_cents, next_payment_unix_ms
		 FROM debts WHERE id = ? AND owner_id = ?`, id, ownerID)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, &core.NotFoundError{Kind: "debt", ID: id}
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func (r *Repository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET category_id = ?, name = ?, original_cents = ?, remaining_cents = ?, interest_rate = ?, minimum_payment_cents = ?, next_payment_unix_ms = ?
		 WHERE id = ? AND owner_id = ?`,
		d.CategoryID, d.Name, d.OriginalAmount.Cents, d.RemainingBalance.Cents,
		d.InterestRate, d.MinimumPayment.Cents, unixMilliOrZero(d.NextPaymentDate), d.ID, d.OwnerID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireRow(res, "debt", d.ID)
}

func (r *Repository) DeleteDebt(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM debts WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res, "debt", id)
}

func (r *Repository) ListDebts(ctx context.Context, ownerID string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, category_id, name, original_cents, remaining_cents, interest_rate, minimum_payment_cents, next_payment_unix_ms
		 FROM debts WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var (
		d                                    core.Debt
		original, remaining, minimum, nextMS int64
	)
	err := row.Scan(&d.ID, &d.OwnerID, &d.CategoryID, &d.Name, &original, &remaining, &d.InterestRate, &minimum, &nextMS)
	if err != nil {
		return core.Debt{}, err
	}
	d.OriginalAmount = core.Money{Cents: original}
	d.RemainingBalance = core.Money{Cents: remaining}
	d.MinimumPayment = core.Money{Cents: minimum}
	if nextMS > 0 {
		d.NextPaymentDate = time.UnixMilli(nextMS).UTC()
	}
	return d, nil
}

func unixMilliOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// --- categories ---

func (r *Repository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, category_group FROM categories WHERE id = ?`, id)

	var (
		c   core.Category
		typ string
	)
	err := row.Scan(&c.ID, &c.Name, &typ, &c.Group)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, &core.NotFoundError{Kind: "category", ID: id}
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	c.Type = core.CategoryType(typ)
	return c, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, category_group FROM categories ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c   core.Category
			typ string
		)
		if err := rows.Scan(&c.ID, &c.Name, &typ, &c.Group); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.CategoryType(typ)
		out = append(out, c)
	}
	return out, rows.Err()
}

// --- quiz questions ---

func (r *Repository) GetQuestion(ctx context.Context, id string) (core.QuizQuestion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question, options, correct_answer, category FROM quiz_questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.QuizQuestion{}, &core.NotFoundError{Kind: "question", ID: id}
	}
	if err != nil {
		return core.QuizQuestion{}, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (r *Repository) ListQuestions(ctx context.Context, category string) ([]core.QuizQuestion, error) {
	query := `SELECT id, question, options, correct_answer, category FROM quiz_questions`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []core.QuizQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuestion(row rowScanner) (core.QuizQuestion, error) {
	var (
		q       core.QuizQuestion
		options string
	)
	if err := row.Scan(&q.ID, &q.Question, &options, &q.CorrectAnswer, &q.Category); err != nil {
		return core.QuizQuestion{}, err
	}
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return core.QuizQuestion{}, fmt.Errorf("decode options for %s: %w", q.ID, err)
	}
	return q, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
