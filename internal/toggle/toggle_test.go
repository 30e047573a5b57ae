// ABOUTME: Tests for toggle rollback, re-entrancy, and membership consistency
// ABOUTME: Uses blocking fake ops to pin down in-flight behavior

package toggle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/toggle"
)

func TestSwitch_SuccessFlips(t *testing.T) {
	s := toggle.NewSwitch(false)

	enableCalls, disableCalls := 0, 0
	enable := func(context.Context) error { enableCalls++; return nil }
	disable := func(context.Context) error { disableCalls++; return nil }

	if err := s.Toggle(context.Background(), enable, disable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Enabled() {
		t.Error("expected flag on after enabling toggle")
	}
	if s.State() != toggle.Committed {
		t.Errorf("expected Committed, got %v", s.State())
	}
	if enableCalls != 1 || disableCalls != 0 {
		t.Errorf("expected only enable to run, got enable=%d disable=%d", enableCalls, disableCalls)
	}

	if err := s.Toggle(context.Background(), enable, disable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Enabled() {
		t.Error("expected flag off after disabling toggle")
	}
	if enableCalls != 1 || disableCalls != 1 {
		t.Errorf("expected one call each, got enable=%d disable=%d", enableCalls, disableCalls)
	}
}

func TestSwitch_FailureRollsBack(t *testing.T) {
	s := toggle.NewSwitch(false)

	boom := errors.New("server rejected")
	sawTransientFlip := false
	enable := func(context.Context) error {
		if s.Enabled() {
			sawTransientFlip = true
		}
		return boom
	}
	disable := func(context.Context) error {
		t.Error("disable must not run when flag is off")
		return nil
	}

	err := s.Toggle(context.Background(), enable, disable)
	if !errors.Is(err, boom) {
		t.Fatalf("expected server error, got %v", err)
	}
	if s.Enabled() {
		t.Error("flag must stay off after failed enable")
	}
	if sawTransientFlip {
		t.Error("flag must never be transiently set before the result is known")
	}
	if s.State() != toggle.RolledBack {
		t.Errorf("expected RolledBack, got %v", s.State())
	}
}

func TestSwitch_ReentrancyGuard(t *testing.T) {
	s := toggle.NewSwitch(false)

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	enable := func(context.Context) error {
		calls++
		close(started)
		<-release
		return nil
	}
	disable := func(context.Context) error { calls++; return nil }

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Toggle(context.Background(), enable, disable); err != nil {
			t.Errorf("first toggle failed: %v", err)
		}
	}()

	<-started
	if err := s.Toggle(context.Background(), enable, disable); !errors.Is(err, toggle.ErrInFlight) {
		t.Errorf("expected ErrInFlight for overlapping toggle, got %v", err)
	}
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected exactly one network call, got %d", calls)
	}
	if !s.Enabled() {
		t.Error("first toggle should have committed")
	}
}

func TestMembership_AddRemoveKeepsListConsistent(t *testing.T) {
	reading := api.Collection{ID: "c1", Name: "reading"}
	archive := api.Collection{ID: "c2", Name: "archive"}

	m := toggle.NewMembership([]api.Collection{reading})

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("nope") }

	// Add to a second collection.
	if err := m.Toggle(context.Background(), archive, ok, fail); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !m.Contains("c2") {
		t.Error("expected membership in archive after add")
	}
	if got := m.Collections(); len(got) != 2 || got[1].Name != "archive" {
		t.Errorf("display list out of sync with id set: %v", got)
	}

	// Remove from the first.
	if err := m.Toggle(context.Background(), reading, fail, ok); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if m.Contains("c1") {
		t.Error("expected membership in reading to be gone")
	}
	if got := m.Collections(); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("display list out of sync after remove: %v", got)
	}
}

func TestMembership_FailureLeavesSetUntouched(t *testing.T) {
	coll := api.Collection{ID: "c1", Name: "reading"}
	m := toggle.NewMembership(nil)

	boom := errors.New("server down")
	err := m.Toggle(context.Background(), coll, func(context.Context) error { return boom }, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected server error, got %v", err)
	}
	if m.Contains("c1") {
		t.Error("membership must not change on failure")
	}
	if len(m.Collections()) != 0 {
		t.Error("display list must not change on failure")
	}
}

func TestMembership_PerCollectionGuard(t *testing.T) {
	c1 := api.Collection{ID: "c1"}
	c2 := api.Collection{ID: "c2"}
	m := toggle.NewMembership(nil)

	started := make(chan struct{})
	release := make(chan struct{})
	slowAdd := func(context.Context) error {
		close(started)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := m.Toggle(context.Background(), c1, slowAdd, nil); err != nil {
			t.Errorf("slow add failed: %v", err)
		}
	}()

	<-started
	// Same collection: rejected while in flight.
	if err := m.Toggle(context.Background(), c1, func(context.Context) error { return nil }, nil); !errors.Is(err, toggle.ErrInFlight) {
		t.Errorf("expected ErrInFlight for same collection, got %v", err)
	}
	// Different collection: proceeds concurrently.
	if err := m.Toggle(context.Background(), c2, func(context.Context) error { return nil }, nil); err != nil {
		t.Errorf("toggle on a different collection must not be blocked: %v", err)
	}

	close(release)
	wg.Wait()

	if !m.Contains("c1") || !m.Contains("c2") {
		t.Error("both memberships should have committed")
	}
}
