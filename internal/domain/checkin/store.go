package checkin

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no persisted state exists. Re-exported by
// the repository package; defined here so the store interface and the
// service that consumes it live in the same package without an import
// cycle.
var ErrNotFound = errors.New("not found")

// LedgerStore manages ledger persistence. Load returns ErrNotFound when no
// ledger has been persisted yet; Save replaces the stored ledger wholesale
// (write-through, no batching).
type LedgerStore interface {
	Load(ctx context.Context) (Ledger, error)
	Save(ctx context.Context, ledger Ledger) error
}
