package cooldown

import (
	"context"
	"time"
)

// DefaultWindow is how long a session that already passed the gate must wait
// before it may pass again.
const DefaultWindow = 22 * time.Hour

// MarkerStore provides session-scoped access to the last-visit marker. The
// store guarantees per-key atomicity; the gate needs nothing beyond that.
type MarkerStore interface {
	Marker(ctx context.Context, sessionID string) (time.Time, bool, error)
	SetMarker(ctx context.Context, sessionID string, t time.Time) error
}

// Gate enforces at most one successful check-in per session per window.
// It is independent of the ledger and touches no persistent storage.
type Gate struct {
	markers MarkerStore
	window  time.Duration
}

// NewGate creates a gate over the given marker store. A non-positive window
// falls back to DefaultWindow.
func NewGate(markers MarkerStore, window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{markers: markers, window: window}
}

// TryEnter reports whether the session may register a check-in now.
//
// A session with no marker gets the marker armed and is denied: the first
// contact arms the cooldown but never counts, so a single stray request
// cannot consume a full day's check-in. A later request must come back to
// get through. Allowed entries do not re-arm the marker; the clock keeps
// running from the session's first contact.
func (g *Gate) TryEnter(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	marker, ok, err := g.markers.Marker(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if !ok {
		if err := g.markers.SetMarker(ctx, sessionID, now); err != nil {
			return false, err
		}
		return false, nil
	}
	if now.Sub(marker) < g.window {
		return false, nil
	}
	return true, nil
}
