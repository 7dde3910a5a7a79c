package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/mhrabal/tally/internal/session"
	"github.com/stretchr/testify/require"
)

func TestStore_MarkerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()

	_, ok, err := store.Marker(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetMarker(ctx, "s1", now))

	marker, ok, err := store.Marker(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, now, marker)

	// Other sessions stay empty.
	_, ok, err = store.Marker(ctx, "s2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_AuthRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()

	_, ok, err := store.Auth(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SetAuth(ctx, "s1", session.Auth{Hash: "h", User: "admin"}))

	auth, ok, err := store.Auth(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "admin", auth.User)

	require.NoError(t, store.ClearAuth(ctx, "s1"))
	_, ok, err = store.Auth(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_ClearAuthKeepsMarker(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SetMarker(ctx, "s1", now))
	require.NoError(t, store.SetAuth(ctx, "s1", session.Auth{Hash: "h", User: "admin"}))
	require.NoError(t, store.ClearAuth(ctx, "s1"))

	_, ok, err := store.Marker(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_NewIDsAreUnique(t *testing.T) {
	store := session.NewStore()
	require.NotEqual(t, store.NewID(), store.NewID())
}
