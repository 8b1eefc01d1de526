package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryAsset   CategoryType = "asset"
	CategoryDebt    CategoryType = "debt"
)

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type (
	CategoryType    string
	TransactionType string

	// Category is seeded reference data. Users never create categories.
	Category struct {
		ID    string
		Name  string
		Type  CategoryType
		Group string
	}

	// Budget caps expense spending for one category in one calendar month.
	// PeriodStart is always the first day of the month, time-zeroed, UTC.
	Budget struct {
		ID          string
		OwnerID     string
		CategoryID  string
		PeriodStart time.Time
		Limit       Money
	}

	Transaction struct {
		ID          string
		OwnerID     string
		CategoryID  string
		Type        TransactionType
		Amount      Money
		Date        time.Time
		Description string
	}

	// ValueSnapshot records an asset's value at a point in time.
	ValueSnapshot struct {
		Date  time.Time
		Value Money
	}

	// Asset carries an append-only value history with at least one entry,
	// seeded at creation.
	Asset struct {
		ID           string
		OwnerID      string
		CategoryID   string
		Name         string
		CurrentValue Money
		ValueHistory []ValueSnapshot
	}

	Debt struct {
		ID               string
		OwnerID          string
		CategoryID       string
		Name             string
		OriginalAmount   Money
		RemainingBalance Money
		InterestRate     float64
		MinimumPayment   Money
		NextPaymentDate  time.Time
	}

	QuizQuestion struct {
		ID            string
		Question      string
		Options       []string
		CorrectAnswer int
		Category      string
	}

	// QuizAnswer is one entry of a submission. Attempts are ephemeral and
	// never persisted.
	QuizAnswer struct {
		QuestionID    string
		SelectedIndex int
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidYear        = errors.New("invalid year")
	ErrEmptyOwner         = errors.New("empty owner id")
	ErrEmptyCategory      = errors.New("empty category id")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrNegativeLimit      = errors.New("budget limit cannot be negative")
	ErrNegativeBalance    = errors.New("remaining balance cannot be negative")
	ErrNegativeRate       = errors.New("interest rate cannot be negative")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(b.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if b.PeriodStart.IsZero() {
		return ErrInvalidDate
	}
	if b.Limit.Cents < 0 {
		return ErrNegativeLimit
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(a.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.RemainingBalance.Cents < 0 {
		return ErrNegativeBalance
	}
	if d.InterestRate < 0 {
		return ErrNegativeRate
	}
	return nil
}
