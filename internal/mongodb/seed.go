package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EnsureSeed loads the reference categories and quiz questions on first run.
// The ids and content match the SQLite seed migration so the two backends
// are interchangeable.
func (r *Repository) EnsureSeed(ctx context.Context) error {
	if err := r.seedCollection(ctx, categoryCollection, seedCategories()); err != nil {
		return err
	}
	return r.seedCollection(ctx, questionCollection, seedQuestions())
}

func (r *Repository) seedCollection(ctx context.Context, name string, docs []any) error {
	n, err := r.coll(name).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.coll(name).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}

func seedCategories() []any {
	cats := []categoryDoc{
		{ID: "cat-salary", Name: "Salary", Type: "income", Group: "Work"},
		{ID: "cat-freelance", Name: "Freelance", Type: "income", Group: "Work"},
		{ID: "cat-other-income", Name: "Other Income", Type: "income"},
		{ID: "cat-groceries", Name: "Groceries", Type: "expense", Group: "Essentials"},
		{ID: "cat-rent", Name: "Rent", Type: "expense", Group: "Essentials"},
		{ID: "cat-utilities", Name: "Utilities", Type: "expense", Group: "Essentials"},
		{ID: "cat-transport", Name: "Transport", Type: "expense", Group: "Essentials"},
		{ID: "cat-entertainment", Name: "Entertainment", Type: "expense", Group: "Lifestyle"},
		{ID: "cat-dining", Name: "Dining Out", Type: "expense", Group: "Lifestyle"},
		{ID: "cat-savings", Name: "Savings Account", Type: "asset", Group: "Cash"},
		{ID: "cat-investments", Name: "Investments", Type: "asset", Group: "Markets"},
		{ID: "cat-property", Name: "Property", Type: "asset", Group: "Real Estate"},
		{ID: "cat-loan", Name: "Personal Loan", Type: "debt", Group: "Loans"},
		{ID: "cat-credit-card", Name: "Credit Card", Type: "debt", Group: "Revolving"},
		{ID: "cat-mortgage", Name: "Mortgage", Type: "debt", Group: "Loans"},
	}
	out := make([]any, len(cats))
	for i, c := range cats {
		out[i] = c
	}
	return out
}

func seedQuestions() []any {
	questions := []questionDoc{
		{
			ID:       "q-emergency-fund",
			Question: "How many months of expenses should an emergency fund typically cover?",
			Options:  []string{"One month", "Three to six months", "Twelve months", "There is no need for one"},
			CorrectAnswer: 1, Category: "budgeting",
		},
		{
			ID:       "q-fifty-thirty-twenty",
			Question: "In the 50/30/20 rule, what does the 20 stand for?",
			Options:  []string{"Wants", "Needs", "Savings and debt repayment", "Rent"},
			CorrectAnswer: 2, Category: "budgeting",
		},
		{
			ID:       "q-budget-first-step",
			Question: "What is the first step when building a monthly budget?",
			Options:  []string{"Cutting all discretionary spending", "Tracking income and expenses", "Opening a new credit card", "Buying budgeting software"},
			CorrectAnswer: 1, Category: "budgeting",
		},
		{
			ID:       "q-compound-interest",
			Question: "Compound interest is best described as:",
			Options:  []string{"Interest paid only on the principal", "Interest earned on both principal and accumulated interest", "A fixed monthly fee", "A type of bank account"},
			CorrectAnswer: 1, Category: "investing",
		},
		{
			ID:       "q-diversification",
			Question: "Why do investors diversify their portfolios?",
			Options:  []string{"To guarantee profits", "To reduce exposure to any single asset", "To avoid paying taxes", "To maximize trading fees"},
			CorrectAnswer: 1, Category: "investing",
		},
		{
			ID:       "q-index-fund",
			Question: "An index fund is:",
			Options:  []string{"A fund that tracks a market index", "A savings account", "A government bond", "A single company stock"},
			CorrectAnswer: 0, Category: "investing",
		},
		{
			ID:       "q-credit-utilization",
			Question: "What credit utilization ratio is generally recommended?",
			Options:  []string{"Below 30%", "Exactly 50%", "Above 70%", "It does not matter"},
			CorrectAnswer: 0, Category: "credit",
		},
		{
			ID:       "q-minimum-payment",
			Question: "Paying only the minimum on a credit card means:",
			Options:  []string{"The balance is paid off fastest", "Interest accrues on the remaining balance", "No interest is charged", "The credit score always improves"},
			CorrectAnswer: 1, Category: "credit",
		},
		{
			ID:       "q-debt-avalanche",
			Question: "The debt avalanche method pays off debts in order of:",
			Options:  []string{"Smallest balance first", "Highest interest rate first", "Newest debt first", "Alphabetical order"},
			CorrectAnswer: 1, Category: "credit",
		},
		{
			ID:       "q-inflation",
			Question: "Inflation affects savings by:",
			Options:  []string{"Increasing their purchasing power", "Reducing their purchasing power", "Doubling them yearly", "Having no effect"},
			CorrectAnswer: 1, Category: "economics",
		},
	}
	out := make([]any, len(questions))
	for i, q := range questions {
		out[i] = q
	}
	return out
}
