package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The ledger save rewrites the table in one transaction; a single
	// connection avoids locked-database errors from the file driver.
	db.SetMaxOpenConns(1)

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS ledger_days (
    position INTEGER PRIMARY KEY,
    date TEXT NOT NULL UNIQUE,
    dotw TEXT NOT NULL,
    last_count INTEGER NOT NULL,
    count_since_yesterday INTEGER NOT NULL,
    last_time TEXT NOT NULL
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
