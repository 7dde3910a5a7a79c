package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	successMessage = "Success, you can now close this page, or check out other data below."
	blockedMessage = "You've already checked in, come back tomorrow!"
)

// Service owns the in-memory ledger and folds accepted check-ins into it.
// The ledger is a single shared mutable resource: every
// read-decide-mutate-persist sequence runs under one exclusive lock, and the
// raw slice is never handed out for external mutation.
type Service struct {
	store  LedgerStore
	logger *slog.Logger

	mu     sync.RWMutex
	ledger Ledger
}

// NewService creates a check-in service. Call Init before serving requests.
func NewService(store LedgerStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Init loads the persisted ledger, seeding a single zero-valued entry dated
// today when no storage exists yet.
func (s *Service) Init(ctx context.Context, now time.Time) error {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.mu.Lock()
			s.ledger = Ledger{Seed(now)}
			s.mu.Unlock()
			s.logger.Info("no persisted ledger, starting fresh", "date", now.Format(dateLayout))
			return nil
		}
		return fmt.Errorf("loading ledger: %w", err)
	}
	if len(ledger) == 0 {
		return ErrEmptyLedger
	}

	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()
	s.logger.Info("ledger loaded", "days", len(ledger), "count", ledger[len(ledger)-1].Counter)
	return nil
}

// RecordVisit folds one allowed check-in into the ledger and persists the
// result before releasing the lock. Same calendar date merges into the tail
// entry; a new date appends. A failed save rolls the in-memory mutation back
// so memory and storage never diverge.
func (s *Service) RecordVisit(ctx context.Context, now time.Time) (VisitSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ledger) == 0 {
		return VisitSummary{}, ErrEmptyLedger
	}

	tail := len(s.ledger) - 1
	current := s.ledger[tail]

	// With a single entry "yesterday" degenerates to the entry itself,
	// which collapses the delta to zero rather than erroring.
	yesterday := tail
	if len(s.ledger) > 1 {
		yesterday = tail - 1
	}

	newCounter := current.Counter + 1
	delta := newCounter - s.ledger[yesterday].Counter

	candidate := DayEntry{
		Date:     now.Format(dateLayout),
		DOTW:     now.Weekday().String(),
		Counter:  newCounter,
		Delta:    delta,
		Time:     now.Format(timeLayout),
		PrevDate: current.Date,
		PrevTime: current.Time,
	}

	if candidate.Date == current.Date {
		// Same day: mutate the tail in place. PrevDate stays as it was
		// since the day has not rolled over.
		entry := &s.ledger[tail]
		entry.Counter = candidate.Counter
		entry.Delta = candidate.Delta
		entry.Time = candidate.Time
		entry.PrevTime = candidate.PrevTime
	} else {
		s.ledger = append(s.ledger, candidate)
	}

	if err := s.store.Save(ctx, s.ledger); err != nil {
		if candidate.Date == current.Date {
			s.ledger[tail] = current
		} else {
			s.ledger = s.ledger[:len(s.ledger)-1]
		}
		return VisitSummary{}, fmt.Errorf("saving ledger: %w", err)
	}

	s.logger.Info("check-in recorded", "date", candidate.Date, "count", newCounter, "delta", delta)

	return VisitSummary{
		Message:  successMessage,
		Time:     stampTime(now),
		LastTime: current.Stamp(),
		Counter:  newCounter,
	}, nil
}

// Status returns the already-checked-in projection of the unmodified tail
// entry. Strictly side-effect free.
func (s *Service) Status() (Rejection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ledger) == 0 {
		return Rejection{}, ErrEmptyLedger
	}

	current := s.ledger[len(s.ledger)-1]
	return Rejection{
		Message:      blockedMessage,
		CurrentCount: current.Counter,
		LastTime:     current.Stamp(),
	}, nil
}

// History returns a copy of the full ledger, oldest first.
func (s *Service) History() Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Ledger, len(s.ledger))
	copy(out, s.ledger)
	return out
}
