// ABOUTME: Tests for the login callback handler
// ABOUTME: First token wins, duplicates are ignored, missing token is a 400

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCallbackHandler_FirstTokenWins(t *testing.T) {
	tokens := make(chan string, 1)
	srv := httptest.NewServer(callbackHandler(tokens))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/callback?token=first")
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	// A second delivery still gets a friendly page but must not
	// displace the token already waiting.
	resp, err = http.Get(srv.URL + "/callback?token=second")
	if err != nil {
		t.Fatalf("duplicate callback request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for duplicate, got %d", resp.StatusCode)
	}

	select {
	case got := <-tokens:
		if got != "first" {
			t.Errorf("expected first token, got %q", got)
		}
	default:
		t.Fatal("no token delivered")
	}

	select {
	case got := <-tokens:
		t.Errorf("duplicate token %q must be dropped", got)
	default:
	}
}

func TestCallbackHandler_MissingToken(t *testing.T) {
	tokens := make(chan string, 1)
	srv := httptest.NewServer(callbackHandler(tokens))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/callback")
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing token, got %d", resp.StatusCode)
	}

	select {
	case got := <-tokens:
		t.Errorf("no token should be delivered, got %q", got)
	default:
	}
}

func TestCallbackHandler_WrongPath(t *testing.T) {
	tokens := make(chan string, 1)
	srv := httptest.NewServer(callbackHandler(tokens))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/elsewhere?token=x")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
