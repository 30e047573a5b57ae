// ABOUTME: Session store holding the Gazette bearer credential on disk
// ABOUTME: Tracks the token's exp claim and drives expiry-based deauthentication

package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned by operations that need a session
// while none exists.
var ErrNotAuthenticated = errors.New("not logged in")

// Session holds the persisted bearer credential and its parsed expiry.
// The zero expiry means the token carries no exp claim and never
// self-expires.
type Session struct {
	path      string
	token     string
	expiresAt time.Time
}

// DefaultTokenPath returns the token file location under the XDG data
// directory.
func DefaultTokenPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gazette", "token")
}

// Load reads the persisted credential, if any. A missing file yields an
// anonymous session, not an error. A persisted token that is already
// past its expiry is discarded and removed.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return s, nil
	}

	expiresAt, err := tokenExpiry(token)
	if err != nil {
		// Unreadable token on disk: treat as anonymous rather than
		// blocking every command.
		_ = os.Remove(path)
		return s, nil
	}
	if !expiresAt.IsZero() && !expiresAt.After(time.Now()) {
		_ = os.Remove(path)
		return s, nil
	}

	s.token = token
	s.expiresAt = expiresAt
	return s, nil
}

// Login stores a new credential and persists it with owner-only
// permissions. Rejects tokens that are already expired.
func (s *Session) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}

	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !expiresAt.IsZero() && !expiresAt.After(time.Now()) {
		return errors.New("token is already expired")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.token = token
	s.expiresAt = expiresAt
	return nil
}

// Logout clears the in-memory credential and removes the persisted one.
func (s *Session) Logout() error {
	s.token = ""
	s.expiresAt = time.Time{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// Authenticated reports whether a live, unexpired credential is held.
func (s *Session) Authenticated() bool {
	if s.token == "" {
		return false
	}
	if !s.expiresAt.IsZero() && !s.expiresAt.After(time.Now()) {
		return false
	}
	return true
}

// Token implements api.TokenSource. It reports no credential once the
// expiry instant has passed, so no request can carry a stale token.
func (s *Session) Token() (string, bool) {
	if !s.Authenticated() {
		return "", false
	}
	return s.token, true
}

// ExpiresAt returns the credential's expiry, zero if it has none.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Claims returns the identity claims embedded in the credential for
// display purposes. The token is decoded without signature verification;
// only the server can vouch for it.
func (s *Session) Claims() (name, email string, err error) {
	if s.token == "" {
		return "", "", ErrNotAuthenticated
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return "", "", fmt.Errorf("failed to decode token: %w", err)
	}
	name, _ = claims["name"].(string)
	email, _ = claims["email"].(string)
	return name, email, nil
}

// Watch returns a channel that receives exactly once when the credential
// expires. For tokens without an exp claim, or while anonymous, the
// channel never fires. Long-lived consumers (the MCP server) use this to
// shut down secured operations at the expiry instant.
func (s *Session) Watch(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)
	if s.expiresAt.IsZero() || s.token == "" {
		return out
	}

	timer := time.NewTimer(time.Until(s.expiresAt))
	go func() {
		defer timer.Stop()
		select {
		case t := <-timer.C:
			out <- t
		case <-ctx.Done():
		}
	}()
	return out
}

// tokenExpiry extracts the exp claim from a JWT without verifying its
// signature. Returns zero time when the claim is absent.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
