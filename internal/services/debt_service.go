package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finbud/internal/core"
)

// DebtService manages debt records. The remaining balance is caller-set;
// no invariant links it to payment history.
type DebtService struct {
	ledger Ledger
}

func NewDebtService(ledger Ledger) *DebtService {
	return &DebtService{ledger: ledger}
}

// DebtUpdate carries the mutable debt fields. Nil means "keep".
type DebtUpdate struct {
	Name                  *string
	RemainingBalanceCents *int64
	InterestRate          *float64
	MinimumPaymentCents   *int64
	NextPaymentDate       *time.Time
}

func (s *DebtService) Create(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	if _, err := s.ledger.GetCategory(ctx, d.CategoryID); err != nil {
		return core.Debt{}, err
	}

	d.ID = uuid.NewString()
	if err := s.ledger.CreateDebt(ctx, d); err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return d, nil
}

func (s *DebtService) Update(ctx context.Context, ownerID, id string, upd DebtUpdate) (core.Debt, error) {
	d, err := s.ledger.GetDebt(ctx, ownerID, id)
	if err != nil {
		return core.Debt{}, err
	}

	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.RemainingBalanceCents != nil {
		d.RemainingBalance = core.Money{Cents: *upd.RemainingBalanceCents}
	}
	if upd.InterestRate != nil {
		d.InterestRate = *upd.InterestRate
	}
	if upd.MinimumPaymentCents != nil {
		d.MinimumPayment = core.Money{Cents: *upd.MinimumPaymentCents}
	}
	if upd.NextPaymentDate != nil {
		d.NextPaymentDate = *upd.NextPaymentDate
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}

	if err := s.ledger.UpdateDebt(ctx, d); err != nil {
		return core.Debt{}, fmt.Errorf("update debt: %w", err)
	}
	return d, nil
}

func (s *DebtService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.ledger.GetDebt(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.ledger.DeleteDebt(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}

func (s *DebtService) Get(ctx context.Context, ownerID, id string) (core.Debt, error) {
	return s.ledger.GetDebt(ctx, ownerID, id)
}

func (s *DebtService) List(ctx context.Context, ownerID string) ([]core.Debt, error) {
	debts, err := s.ledger.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return debts, nil
}
