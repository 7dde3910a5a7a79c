// Package jsonfile persists the ledger in the legacy JSON layout: a state
// directory holding data.json with one record per day, oldest first.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mhrabal/tally/internal/domain/checkin"
	"github.com/mhrabal/tally/internal/repository"
)

const fileName = "data.json"

// document is the on-disk shape. The field names are fixed by the legacy
// format and must not change.
type document struct {
	State []dayRecord `json:"state"`
}

type dayRecord struct {
	Date      string `json:"date"`
	DOTW      string `json:"dotw"`
	LastCount int    `json:"last_count"`
	Delta     int    `json:"count_since_yesterday"`
	LastTime  string `json:"last_time"`
}

// Store implements repository.LedgerStore on a JSON file.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save; a missing directory or file reads as not found.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the persisted ledger. The on-disk records carry no previous-day
// fields, so each entry's PrevDate/PrevTime are rehydrated from the entry
// itself, matching how the legacy format was read back.
func (s *Store) Load(_ context.Context) (checkin.Ledger, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing ledger file: %w", err)
	}
	if len(doc.State) == 0 {
		return nil, repository.ErrNotFound
	}

	ledger := make(checkin.Ledger, 0, len(doc.State))
	for _, rec := range doc.State {
		ledger = append(ledger, checkin.DayEntry{
			Date:     rec.Date,
			DOTW:     rec.DOTW,
			Counter:  rec.LastCount,
			Delta:    rec.Delta,
			Time:     rec.LastTime,
			PrevDate: rec.Date,
			PrevTime: rec.LastTime,
		})
	}
	return ledger, nil
}

// Save writes the full ledger. The write goes through a temp file and a
// rename so a crash mid-write leaves the previous version intact.
func (s *Store) Save(_ context.Context, ledger checkin.Ledger) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	doc := document{State: make([]dayRecord, 0, len(ledger))}
	for _, entry := range ledger {
		doc.State = append(doc.State, dayRecord{
			Date:      entry.Date,
			DOTW:      entry.DOTW,
			LastCount: entry.Counter,
			Delta:     entry.Delta,
			LastTime:  entry.Time,
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, fileName)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}
