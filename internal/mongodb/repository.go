// Package mongodb is the MongoDB ledger, selected with DATA_BACKEND=mongo.
// It mirrors the SQLite repository's semantics: int cents, owner-scoped
// queries, NotFoundError on missing documents.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finbud/internal/core"
	"finbud/internal/services"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	budgetCollection      = "budgets"
	transactionCollection = "transactions"
	assetCollection       = "assets"
	debtCollection        = "debts"
	categoryCollection    = "categories"
	questionCollection    = "quiz_questions"
)

type Repository struct {
	client *mongo.Client
	dbName string
}

var _ services.Ledger = (*Repository)(nil)

func NewRepository(ctx context.Context, uri, dbName string) (*Repository, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	r := &Repository{client: client, dbName: dbName}
	if err := r.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// ensureIndexes backs the one-budget-per-category-per-period rule with a
// unique index, matching the SQLite UNIQUE constraint.
func (r *Repository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll(budgetCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "category_id", Value: 1},
			{Key: "period_start", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create budget index: %w", err)
	}

	_, err = r.coll(transactionCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "date_unix_ms", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create transaction index: %w", err)
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

// --- documents ---

type transactionDoc struct {
	ID          string `bson:"_id"`
	OwnerID     string `bson:"owner_id"`
	CategoryID  string `bson:"category_id"`
	Type        string `bson:"type"`
	AmountCents int64  `bson:"amount_cents"`
	DateUnixMS  int64  `bson:"date_unix_ms"`
	Description string `bson:"description"`
}

func (d transactionDoc) toCore() core.Transaction {
	return core.Transaction{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		CategoryID:  d.CategoryID,
		Type:        core.TransactionType(d.Type),
		Amount:      core.Money{Cents: d.AmountCents},
		Date:        time.UnixMilli(d.DateUnixMS).UTC(),
		Description: d.Description,
	}
}

func toTransactionDoc(tx core.Transaction) transactionDoc {
	return transactionDoc{
		ID:          tx.ID,
		OwnerID:     tx.OwnerID,
		CategoryID:  tx.CategoryID,
		Type:        string(tx.Type),
		AmountCents: tx.Amount.Cents,
		DateUnixMS:  tx.Date.UnixMilli(),
		Description: tx.Description,
	}
}

type budgetDoc struct {
	ID          string `bson:"_id"`
	OwnerID     string `bson:"owner_id"`
	CategoryID  string `bson:"category_id"`
	PeriodStart string `bson:"period_start"`
	LimitCents  int64  `bson:"limit_cents"`
}

func (d budgetDoc) toCore() core.Budget {
	return core.Budget{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		CategoryID:  d.CategoryID,
		PeriodStart: periodFromKey(d.PeriodStart),
		Limit:       core.Money{Cents: d.LimitCents},
	}
}

type snapshotDoc struct {
	DateUnixMS int64 `bson:"date_unix_ms"`
	ValueCents int64 `bson:"value_cents"`
}

type assetDoc struct {
	ID           string        `bson:"_id"`
	OwnerID      string        `bson:"owner_id"`
	CategoryID   string        `bson:"category_id"`
	Name         string        `bson:"name"`
	CurrentCents int64         `bson:"current_value_cents"`
	ValueHistory []snapshotDoc `bson:"value_history"`
}

func (d assetDoc) toCore() core.Asset {
	a := core.Asset{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		CategoryID:   d.CategoryID,
		Name:         d.Name,
		CurrentValue: core.Money{Cents: d.CurrentCents},
	}
	for _, s := range d.ValueHistory {
		a.ValueHistory = append(a.ValueHistory, core.ValueSnapshot{
			Date:  time.UnixMilli(s.DateUnixMS).UTC(),
			Value: core.Money{Cents: s.ValueCents},
		})
	}
	return a
}

type debtDoc struct {
	ID                  string  `bson:"_id"`
	OwnerID             string  `bson:"owner_id"`
	CategoryID          string  `bson:"category_id"`
	Name                string  `bson:"name"`
	OriginalCents       int64   `bson:"original_cents"`
	RemainingCents      int64   `bson:"remaining_cents"`
	InterestRate        float64 `bson:"interest_rate"`
	MinimumPaymentCents int64   `bson:"minimum_payment_cents"`
	NextPaymentUnixMS   int64   `bson:"next_payment_unix_ms"`
}

func (d debtDoc) toCore() core.Debt {
	debt := core.Debt{
		ID:               d.ID,
		OwnerID:          d.OwnerID,
		CategoryID:       d.CategoryID,
		Name:             d.Name,
		OriginalAmount:   core.Money{Cents: d.OriginalCents},
		RemainingBalance: core.Money{Cents: d.RemainingCents},
		InterestRate:     d.InterestRate,
		MinimumPayment:   core.Money{Cents: d.MinimumPaymentCents},
	}
	if d.NextPaymentUnixMS > 0 {
		debt.NextPaymentDate = time.UnixMilli(d.NextPaymentUnixMS).UTC()
	}
	return debt
}

func toDebtDoc(d core.Debt) debtDoc {
	doc := debtDoc{
		ID:                  d.ID,
		OwnerID:             d.OwnerID,
		CategoryID:          d.CategoryID,
		Name:                d.Name,
		OriginalCents:       d.OriginalAmount.Cents,
		RemainingCents:      d.RemainingBalance.Cents,
		InterestRate:        d.InterestRate,
		MinimumPaymentCents: d.MinimumPayment.Cents,
	}
	if !d.NextPaymentDate.IsZero() {
		doc.NextPaymentUnixMS = d.NextPaymentDate.UnixMilli()
	}
	return doc
}

type categoryDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Type  string `bson:"type"`
	Group string `bson:"category_group"`
}

type questionDoc struct {
	ID            string   `bson:"_id"`
	Question      string   `bson:"question"`
	Options       []string `bson:"options"`
	CorrectAnswer int      `bson:"correct_answer"`
	Category      string   `bson:"category"`
}

// --- transactions ---

func (r *Repository) CreateTransaction(ctx context.Context, tx core.Transaction) error {
	_, err := r.coll(transactionCollection).InsertOne(ctx, toTransactionDoc(tx))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, ownerID, id string) (core.Transaction, error) {
	var doc transactionDoc
	err := r.coll(transactionCollection).FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Transaction{}, &core.NotFoundError{Kind: "transaction", ID: id}
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return doc.toCore(), nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	res, err := r.coll(transactionCollection).ReplaceOne(ctx,
		bson.M{"_id": tx.ID, "owner_id": tx.OwnerID}, toTransactionDoc(tx))
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return &core.NotFoundError{Kind: "transaction", ID: tx.ID}
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	res, err := r.coll(transactionCollection).DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Kind: "transaction", ID: id}
	}
	return nil
}

func transactionFilter(ownerID string, f services.TransactionFilter) bson.M {
	filter := bson.M{"owner_id": ownerID}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	dateRange := bson.M{}
	if !f.From.IsZero() {
		dateRange["$gte"] = f.From.UnixMilli()
	}
	if !f.To.IsZero() {
		dateRange["$lte"] = f.To.UnixMilli()
	}
	if len(dateRange) > 0 {
		filter["date_unix_ms"] = dateRange
	}
	return filter
}

func (r *Repository) ListTransactions(ctx context.Context, ownerID string, f services.TransactionFilter) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_unix_ms", Value: -1}})
	cursor, err := r.coll(transactionCollection).Find(ctx, transactionFilter(ownerID, f), opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Transaction
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, doc.toCore())
	}
	return out, cursor.Err()
}

func (r *Repository) SumTransactionAmounts(ctx context.Context, ownerID string, f services.TransactionFilter) (core.Money, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: transactionFilter(ownerID, f)}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount_cents"},
		}}},
	}
	cursor, err := r.coll(transactionCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return core.Money{}, fmt.Errorf("decode sum: %w", err)
		}
	}
	return core.Money{Cents: result.Total}, cursor.Err()
}

// --- budgets ---

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) error {
	doc := budgetDoc{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		CategoryID:  b.CategoryID,
		PeriodStart: periodKey(b.PeriodStart),
		LimitCents:  b.Limit.Cents,
	}
	if _, err := r.coll(budgetCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, ownerID, id string) (core.Budget, error) {
	var doc budgetDoc
	err := r.coll(budgetCollection).FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: id}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return doc.toCore(), nil
}

func (r *Repository) UpdateBudget(ctx context.Context, b core.Budget) error {
	doc := budgetDoc{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		CategoryID:  b.CategoryID,
		PeriodStart: periodKey(b.PeriodStart),
		LimitCents:  b.Limit.Cents,
	}
	res, err := r.coll(budgetCollection).ReplaceOne(ctx, bson.M{"_id": b.ID, "owner_id": b.OwnerID}, doc)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if res.MatchedCount == 0 {
		return &core.NotFoundError{Kind: "budget", ID: b.ID}
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, ownerID, id string) error {
	res, err := r.coll(budgetCollection).DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Kind: "budget", ID: id}
	}
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context, ownerID string, periodStart time.Time) ([]core.Budget, error) {
	filter := bson.M{"owner_id": ownerID}
	if !periodStart.IsZero() {
		filter["period_start"] = periodKey(periodStart)
	}
	opts := options.Find().SetSort(bson.D{{Key: "period_start", Value: -1}, {Key: "category_id", Value: 1}})

	cursor, err := r.coll(budgetCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Budget
	for cursor.Next(ctx) {
		var doc budgetDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode budget: %w", err)
		}
		out = append(out, doc.toCore())
	}
	return out, cursor.Err()
}

func (r *Repository) FindBudget(ctx context.Context, ownerID, categoryID string, periodStart time.Time) (core.Budget, error) {
	var doc budgetDoc
	err := r.coll(budgetCollection).FindOne(ctx, bson.M{
		"owner_id":     ownerID,
		"category_id":  categoryID,
		"period_start": periodKey(periodStart),
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Budget{}, &core.NotFoundError{Kind: "budget", ID: categoryID + "/" + periodKey(periodStart)}
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("find budget: %w", err)
	}
	return doc.toCore(), nil
}

func (r *Repository) SumBudgetLimits(ctx context.Context, ownerID string, periodStart time.Time, excludeID string) (core.Money, error) {
	match := bson.M{
		"owner_id":     ownerID,
		"period_start": periodKey(periodStart),
	}
	if excludeID != "" {
		match["_id"] = bson.M{"$ne": excludeID}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$limit_cents"},
		}}},
	}
	cursor, err := r.coll(budgetCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum budget limits: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return core.Money{}, fmt.Errorf("decode sum: %w", err)
		}
	}
	return core.Money{Cents: result.Total}, cursor.Err()
}

// --- assets ---

func (r *Repository) CreateAsset(ctx context.Context, a core.Asset) error {
	doc := assetDoc{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		CategoryID:   a.CategoryID,
		Name:         a.Name,
		CurrentCents: a.CurrentValue.Cents,
		ValueHistory: []snapshotDoc{},
	}
	for _, s := range a.ValueHistory {
		doc.ValueHistory = append(doc.ValueHistory, snapshotDoc{
			DateUnixMS: s.Date.UnixMilli(),
			ValueCents: s.Value.Cents,
		})
	}
	if _, err := r.coll(assetCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *Repository) GetAsset(ctx context.Context, ownerID, id string) (core.Asset, error) {
	var doc assetDoc
	err := r.coll(assetCollection).FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Asset{}, &core.NotFoundError{Kind: "asset", ID: id}
	}
	if err != nil {
		return core.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return doc.toCore(), nil
}

// UpdateAsset replaces the scalar fields only; the history array is owned by
// AppendAssetValue.
func (r *Repository) UpdateAsset(ctx context.Context, a core.Asset) error {
	res, err := r.coll(assetCollection).UpdateOne(ctx,
		bson.M{"_id": a.ID, "owner_id": a.OwnerID},
		bson.M{"$set": bson.M{
			"category_id":         a.CategoryID,
			"name":                a.Name,
			"current_value_cents": a.CurrentValue.Cents,
		}})
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if res.MatchedCount == 0 {
		return &core.NotFoundError{Kind: "asset", ID: a.ID}
	}
	return nil
}

func (r *Repository) AppendAssetValue(ctx context.Context, ownerID, id string, snap core.ValueSnapshot) error {
	res, err := r.coll(assetCollection).UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$push": bson.M{"value_history": snapshotDoc{
			DateUnixMS: snap.Date.UnixMilli(),
			ValueCents: snap.Value.Cents,
		}}})
	if err != nil {
		return fmt.Errorf("append asset value: %w", err)
	}
	if res.MatchedCount == 0 {
		return &core.NotFoundError{Kind: "asset", ID: id}
	}
	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, ownerID, id string) error {
	res, err := r.coll(assetCollection).DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Kind: "asset", ID: id}
	}
	return nil
}

func (r *Repository) ListAssets(ctx context.Context, ownerID string) ([]core.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll(assetCollection).Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Asset
	for cursor.Next(ctx) {
		var doc assetDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode asset: %w", err)
		}
		out = append(out, doc.toCore())
	}
	return out, cursor.Err()
}

// --- debts ---

func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) error {
	if _, err := r.coll(debtCollection).InsertOne(ctx, toDebtDoc(d)); err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *Repository) GetDebt(ctx context.Context, ownerID, id string) (core.Debt, error) {
	var doc debtDoc
	err := r.coll(debtCollection).FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Debt{}, &core.NotFoundError{Kind: "debt", ID: id}
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt: %w", err)
	}
	return doc.toCore(), nil
}

func (r *Repository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.coll(debtCollection).ReplaceOne(ctx, bson.M{"_id": d.ID, "owner_id": d.OwnerID}, toDebtDoc(d))
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if res.MatchedCount == 0 {
		return &core.NotFoundError{Kind: "debt", ID: d.ID}
	}
	return nil
}

func (r *Repository) DeleteDebt(ctx context.Context, ownerID, id string) error {
	res, err := r.coll(debtCollection).DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Kind: "debt", ID: id}
	}
	return nil
}

func (r *Repository) ListDebts(ctx context.Context, ownerID string) ([]core.Debt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll(debtCollection).Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Debt
	for cursor.Next(ctx) {
		var doc debtDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode debt: %w", err)
		}
		out = append(out, doc.toCore())
	}
	return out, cursor.Err()
}

// --- categories ---

func (r *Repository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	var doc categoryDoc
	err := r.coll(categoryCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.Category{}, &core.NotFoundError{Kind: "category", ID: id}
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return core.Category{ID: doc.ID, Name: doc.Name, Type: core.CategoryType(doc.Type), Group: doc.Group}, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll(categoryCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.Category
	for cursor.Next(ctx) {
		var doc categoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, core.Category{ID: doc.ID, Name: doc.Name, Type: core.CategoryType(doc.Type), Group: doc.Group})
	}
	return out, cursor.Err()
}

// --- quiz questions ---

func (r *Repository) GetQuestion(ctx context.Context, id string) (core.QuizQuestion, error) {
	var doc questionDoc
	err := r.coll(questionCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.QuizQuestion{}, &core.NotFoundError{Kind: "question", ID: id}
	}
	if err != nil {
		return core.QuizQuestion{}, fmt.Errorf("get question: %w", err)
	}
	return core.QuizQuestion(doc), nil
}

func (r *Repository) ListQuestions(ctx context.Context, category string) ([]core.QuizQuestion, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := r.coll(questionCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []core.QuizQuestion
	for cursor.Next(ctx) {
		var doc questionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, core.QuizQuestion(doc))
	}
	return out, cursor.Err()
}
