// Package worker exports transactions to a spreadsheet by consuming the
// notification stream.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finbud/internal/notify"
	"finbud/internal/services"
	"finbud/internal/sheets"
)

// ReportWorker appends created transactions to the export sheet. The sheet
// is an append-only journal: updates and deletes are acknowledged without a
// sheet write.
type ReportWorker struct {
	ledger     services.TransactionLedger
	categories services.CategoryStore
	sheets     sheets.TransactionWriter
}

func NewReportWorker(ledger services.TransactionLedger, categories services.CategoryStore, sheets sheets.TransactionWriter) *ReportWorker {
	return &ReportWorker{
		ledger:     ledger,
		categories: categories,
		sheets:     sheets,
	}
}

// HandleEnvelope processes one consumed envelope. A returned error requeues
// the message.
func (w *ReportWorker) HandleEnvelope(ctx context.Context, env *notify.Envelope) error {
	if env.Event != notify.EventTransactionUpdate {
		return nil
	}

	var event notify.TransactionEvent
	if err := json.Unmarshal(env.Payload, &event); err != nil {
		slog.ErrorContext(ctx, "Dropping undecodable transaction event",
			"envelope_id", env.ID, "error", err)
		return nil
	}

	if event.Action != notify.ActionCreated {
		slog.DebugContext(ctx, "Skipping non-create transaction event",
			"transaction_id", event.TransactionID, "action", event.Action)
		return nil
	}

	tx, err := w.ledger.GetTransaction(ctx, env.OwnerID, event.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", event.TransactionID, err)
	}

	categoryName := tx.CategoryID
	if cat, err := w.categories.GetCategory(ctx, tx.CategoryID); err == nil {
		categoryName = cat.Name
	}

	ref, err := w.sheets.Append(ctx, tx, categoryName)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Exported transaction to sheet",
		"transaction_id", tx.ID,
		"sheet_ref", ref,
		"amount_cents", tx.Amount.Cents)
	return nil
}
