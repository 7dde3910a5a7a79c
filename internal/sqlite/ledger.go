package sqlite

import (
	"context"
	"fmt"

	"github.com/mhrabal/tally/internal/domain/checkin"
	"github.com/mhrabal/tally/internal/repository"
)

// LedgerStore implements repository.LedgerStore for SQLite
type LedgerStore struct {
	db *DB
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(db *DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Load retrieves the full ledger, oldest day first. Previous-day fields are
// rehydrated from each row itself, same as the JSON file layout.
func (r *LedgerStore) Load(ctx context.Context) (checkin.Ledger, error) {
	query := `
		SELECT date, dotw, last_count, count_since_yesterday, last_time
		FROM ledger_days
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	var ledger checkin.Ledger
	for rows.Next() {
		var entry checkin.DayEntry
		if err := rows.Scan(&entry.Date, &entry.DOTW, &entry.Counter, &entry.Delta, &entry.Time); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entry.PrevDate = entry.Date
		entry.PrevTime = entry.Time
		ledger = append(ledger, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}

	if len(ledger) == 0 {
		return nil, repository.ErrNotFound
	}
	return ledger, nil
}

// Save replaces the stored ledger with the given one inside a transaction.
// The ledger is at most one row per day, so a full rewrite stays cheap.
func (r *LedgerStore) Save(ctx context.Context, ledger checkin.Ledger) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_days`); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	insert := `
		INSERT INTO ledger_days (position, date, dotw, last_count, count_since_yesterday, last_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, entry := range ledger {
		if _, err := tx.ExecContext(ctx, insert,
			i,
			entry.Date,
			entry.DOTW,
			entry.Counter,
			entry.Delta,
			entry.Time,
		); err != nil {
			return fmt.Errorf("failed to insert ledger row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger: %w", err)
	}
	return nil
}
