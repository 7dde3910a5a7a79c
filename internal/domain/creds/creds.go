// Package creds manages the single admin login used by the dashboard.
// Credentials live in a JSON file next to the binary; when the file is
// missing a username and random password are generated and written out for
// the operator to pick up. Only the bcrypt hash is kept in memory.
package creds

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

const defaultUsername = "Administrator"

// ErrInvalidLogin is returned when a username/password pair does not match.
var ErrInvalidLogin = errors.New("invalid username or password")

type loginFile struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials holds the admin username and the bcrypt hash of the password.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Load reads the credentials file at path, generating it first when absent.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return generate(path)
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var login loginFile
	if err := json.Unmarshal(data, &login); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	if login.Username == "" || login.Password == "" {
		return nil, fmt.Errorf("credentials file %s is incomplete", path)
	}
	return fromLogin(login)
}

// generate writes a fresh credentials file with a random 32-byte password.
func generate(path string) (*Credentials, error) {
	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}
	login := loginFile{Username: defaultUsername, Password: secret}

	data, err := json.MarshalIndent(login, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing credentials: %w", err)
	}
	return fromLogin(login)
}

func fromLogin(login loginFile) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(login.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return &Credentials{Username: login.Username, PasswordHash: string(hash)}, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Authenticate verifies a submitted username/password pair.
func (c *Credentials) Authenticate(username, password string) error {
	if username != c.Username {
		// Burn a compare anyway so both failure paths cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
		return ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidLogin
	}
	return nil
}

// VerifySession checks the hash/user pair a session stored at login time.
func (c *Credentials) VerifySession(hash, user string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.Username)) == 1
	hashOK := subtle.ConstantTimeCompare([]byte(hash), []byte(c.PasswordHash)) == 1
	return userOK && hashOK
}
