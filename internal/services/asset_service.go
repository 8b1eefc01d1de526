package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finbud/internal/core"
)

// AssetService manages assets and their append-only value history. The
// history always holds at least one snapshot, seeded at creation; later
// value changes append, never rewrite.
type AssetService struct {
	ledger Ledger
	now    func() time.Time
}

func NewAssetService(ledger Ledger) *AssetService {
	return &AssetService{ledger: ledger, now: time.Now}
}

// AssetUpdate carries the mutable asset fields. Nil means "keep".
type AssetUpdate struct {
	Name              *string
	CategoryID        *string
	CurrentValueCents *int64
}

// Create persists a new asset, seeding its history with the opening value.
func (s *AssetService) Create(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	if _, err := s.ledger.GetCategory(ctx, a.CategoryID); err != nil {
		return core.Asset{}, err
	}

	a.ID = uuid.NewString()
	a.ValueHistory = []core.ValueSnapshot{{
		Date:  s.now().UTC(),
		Value: a.CurrentValue,
	}}

	if err := s.ledger.CreateAsset(ctx, a); err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

// Update applies field changes. A changed current value appends a snapshot
// to the history; an unchanged value leaves the history alone.
func (s *AssetService) Update(ctx context.Context, ownerID, id string, upd AssetUpdate) (core.Asset, error) {
	a, err := s.ledger.GetAsset(ctx, ownerID, id)
	if err != nil {
		return core.Asset{}, err
	}

	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.CategoryID != nil {
		if _, err := s.ledger.GetCategory(ctx, *upd.CategoryID); err != nil {
			return core.Asset{}, err
		}
		a.CategoryID = *upd.CategoryID
	}

	var snap *core.ValueSnapshot
	if upd.CurrentValueCents != nil && *upd.CurrentValueCents != a.CurrentValue.Cents {
		a.CurrentValue = core.Money{Cents: *upd.CurrentValueCents}
		snap = &core.ValueSnapshot{Date: s.now().UTC(), Value: a.CurrentValue}
		a.ValueHistory = append(a.ValueHistory, *snap)
	}

	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	if err := s.ledger.UpdateAsset(ctx, a); err != nil {
		return core.Asset{}, fmt.Errorf("update asset: %w", err)
	}
	if snap != nil {
		if err := s.ledger.AppendAssetValue(ctx, ownerID, id, *snap); err != nil {
			return core.Asset{}, fmt.Errorf("append asset value: %w", err)
		}
	}
	return a, nil
}

// Delete removes an owned asset and its history.
func (s *AssetService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.ledger.GetAsset(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.ledger.DeleteAsset(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// Get returns an owned asset with its full history.
func (s *AssetService) Get(ctx context.Context, ownerID, id string) (core.Asset, error) {
	return s.ledger.GetAsset(ctx, ownerID, id)
}

// List returns the owner's assets.
func (s *AssetService) List(ctx context.Context, ownerID string) ([]core.Asset, error) {
	assets, err := s.ledger.ListAssets(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}
