package checkin

import "errors"

// ErrEmptyLedger indicates the ledger precondition was violated. Bootstrap
// guarantees at least one seed entry, so an empty ledger means storage
// corruption and is never papered over with a fabricated entry.
var ErrEmptyLedger = errors.New("ledger is empty")
