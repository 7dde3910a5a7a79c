package repository

import (
	"github.com/mhrabal/tally/internal/domain/checkin"
)

// LedgerStore manages ledger persistence. Load returns ErrNotFound when no
// ledger has been persisted yet; Save replaces the stored ledger wholesale
// (write-through, no batching). Aliased from the checkin package, where it
// is defined alongside the service that consumes it to avoid an import
// cycle.
type LedgerStore = checkin.LedgerStore
