// Package sheets defines the port for the spreadsheet export the report
// worker writes to.
package sheets

import (
	"context"

	"finbud/internal/core"
)

// TransactionWriter appends one transaction row to an external spreadsheet
// and returns a reference to the written row.
type TransactionWriter interface {
	Append(ctx context.Context, tx core.Transaction, categoryName string) (rowRef string, err error)
}
