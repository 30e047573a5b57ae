// ABOUTME: Tests for the session store covering persistence and expiry
// ABOUTME: Signs throwaway HS256 tokens to exercise the exp claim handling

package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rhajizada/gazette-cli/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestLoad_MissingFileIsAnonymous(t *testing.T) {
	s, err := session.Load(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected anonymous session")
	}
	if _, ok := s.Token(); ok {
		t.Error("anonymous session must not supply a token")
	}
}

func TestLoginPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	s, err := session.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Login(tok); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !s.Authenticated() {
		t.Fatal("expected authenticated session after login")
	}

	reloaded, err := session.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := reloaded.Token()
	if !ok || got != tok {
		t.Error("expected persisted token to survive reload")
	}

	name, email, err := reloaded.Claims()
	if err != nil {
		t.Fatalf("claims failed: %v", err)
	}
	if name != "Jane Doe" || email != "jane@example.com" {
		t.Errorf("unexpected claims: %q %q", name, email)
	}
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})

	s, err := session.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Login(tok); err == nil {
		t.Fatal("expected login with expired token to fail")
	}
}

func TestLoad_ExpiredTokenOnDiskDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	if err := os.WriteFile(path, []byte(tok+"\n"), 0o600); err != nil {
		t.Fatalf("failed to seed token file: %v", err)
	}

	s, err := session.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected expired on-disk token to be discarded")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected expired token file to be removed")
	}
}

func TestLogoutClearsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	s, _ := session.Load(path)
	if err := s.Login(tok); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected anonymous session after logout")
	}

	reloaded, err := session.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Authenticated() {
		t.Error("expected token file to be gone after logout")
	}
}

func TestTokenHiddenAfterExpiryInstant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Second).Unix()})

	s, _ := session.Load(path)
	if err := s.Login(tok); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	time.Sleep(time.Until(s.ExpiresAt()) + 50*time.Millisecond)
	if _, ok := s.Token(); ok {
		t.Error("expired session must not supply a token")
	}
}

func TestWatchFiresAtExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Second).Unix()})

	s, _ := session.Load(path)
	if err := s.Login(tok); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	select {
	case <-s.Watch(ctx):
		elapsed := time.Since(start)
		remaining := s.ExpiresAt().Sub(start)
		if elapsed < remaining-100*time.Millisecond {
			t.Errorf("expiry fired %v early", remaining-elapsed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expiry never fired")
	}
}

func TestWatchNeverFiresWithoutExp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, jwt.MapClaims{"name": "no expiry"})

	s, _ := session.Load(path)
	if err := s.Login(tok); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if s.ExpiresAt() != (time.Time{}) {
		t.Fatal("expected zero expiry")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case <-s.Watch(ctx):
		t.Error("watch must not fire for tokens without exp")
	case <-time.After(100 * time.Millisecond):
	}
}
