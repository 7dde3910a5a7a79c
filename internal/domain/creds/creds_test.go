package creds_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mhrabal/tally/internal/domain/creds"
	"github.com/stretchr/testify/require"
)

func TestLoad_GeneratesWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_login.json")

	c, err := creds.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Administrator", c.Username)
	require.NotEmpty(t, c.PasswordHash)

	// The generated file is readable back and authenticates.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var login struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(data, &login))
	require.NoError(t, c.Authenticate(login.Username, login.Password))
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_login.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"alice","password":"hunter2"}`), 0o600))

	c, err := creds.Load(path)
	require.NoError(t, err)
	require.Equal(t, "alice", c.Username)
	require.NoError(t, c.Authenticate("alice", "hunter2"))
}

func TestAuthenticate_Rejections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_login.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"alice","password":"hunter2"}`), 0o600))

	c, err := creds.Load(path)
	require.NoError(t, err)

	require.ErrorIs(t, c.Authenticate("alice", "wrong"), creds.ErrInvalidLogin)
	require.ErrorIs(t, c.Authenticate("bob", "hunter2"), creds.ErrInvalidLogin)
}

func TestVerifySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_login.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"alice","password":"hunter2"}`), 0o600))

	c, err := creds.Load(path)
	require.NoError(t, err)

	require.True(t, c.VerifySession(c.PasswordHash, "alice"))
	require.False(t, c.VerifySession(c.PasswordHash, "bob"))
	require.False(t, c.VerifySession("stale-hash", "alice"))
}

func TestLoad_RejectsIncompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_login.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"alice"}`), 0o600))

	_, err := creds.Load(path)
	require.Error(t, err)
}
