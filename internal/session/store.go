// Package session holds per-session server-side state: the cooldown marker
// and the login flag. Sessions are identified by opaque IDs carried in a
// cookie; the transport owns the cookie, this store owns the state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Auth is the credential pair a session holds after a successful login.
type Auth struct {
	Hash string
	User string
}

type entry struct {
	marker    time.Time
	hasMarker bool
	auth      Auth
	hasAuth   bool
}

// Store is an in-memory session store. Each exported operation is atomic
// under the store's lock, which is all the cooldown gate requires.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// NewID mints a fresh opaque session ID.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Marker returns the session's last-visit marker, if one was set.
func (s *Store) Marker(_ context.Context, sessionID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || !e.hasMarker {
		return time.Time{}, false, nil
	}
	return e.marker, true, nil
}

// SetMarker records the session's last-visit marker.
func (s *Store) SetMarker(_ context.Context, sessionID string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(sessionID)
	e.marker = t
	e.hasMarker = true
	return nil
}

// Auth returns the session's login flag, if set.
func (s *Store) Auth(_ context.Context, sessionID string) (Auth, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || !e.hasAuth {
		return Auth{}, false, nil
	}
	return e.auth, true, nil
}

// SetAuth stores the session's login flag.
func (s *Store) SetAuth(_ context.Context, sessionID string, auth Auth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.ensure(sessionID)
	e.auth = auth
	e.hasAuth = true
	return nil
}

// ClearAuth drops the session's login flag, keeping any cooldown marker.
func (s *Store) ClearAuth(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok {
		e.auth = Auth{}
		e.hasAuth = false
	}
	return nil
}

func (s *Store) ensure(sessionID string) *entry {
	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{}
		s.entries[sessionID] = e
	}
	return e
}
