// ABOUTME: Boolean-flip server mutations with re-entrancy guard and rollback
// ABOUTME: Local state only flips after the server confirms, never optimistically

package toggle

import (
	"context"
	"errors"
	"sync"
)

// State is where a toggle stands in its lifecycle.
type State int

const (
	// Idle: no mutation underway; Enabled reflects the last known
	// server truth.
	Idle State = iota
	// InFlight: a mutation has been issued and not yet resolved.
	// Further toggles are rejected until it resolves.
	InFlight
	// Committed: the last mutation succeeded and Enabled was flipped.
	Committed
	// RolledBack: the last mutation failed and Enabled kept its prior
	// value.
	RolledBack
)

// ErrInFlight is returned when a toggle is invoked while a previous one
// for the same entity has not resolved. No network call is made.
var ErrInFlight = errors.New("toggle already in flight")

// Op performs one side of a boolean-flip mutation against the server.
type Op func(ctx context.Context) error

// Switch tracks one entity's boolean flag (subscribed, liked) through
// toggle mutations. The cached value flips only on confirmed success.
type Switch struct {
	mu      sync.Mutex
	state   State
	enabled bool
}

// NewSwitch creates a Switch seeded with the server-reported flag.
func NewSwitch(enabled bool) *Switch {
	return &Switch{enabled: enabled}
}

// Enabled returns the cached flag.
func (s *Switch) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// State returns the lifecycle state of the last toggle.
func (s *Switch) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Toggle runs enable or disable depending on the cached flag: enable
// when currently off, disable when currently on. While the call is
// unresolved further toggles fail fast with ErrInFlight. On success the
// flag flips; on failure it is left untouched and the server's error is
// returned for the caller to surface exactly once.
func (s *Switch) Toggle(ctx context.Context, enable, disable Op) error {
	s.mu.Lock()
	if s.state == InFlight {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.state = InFlight
	op := enable
	if s.enabled {
		op = disable
	}
	s.mu.Unlock()

	err := op(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = RolledBack
		return err
	}
	s.enabled = !s.enabled
	s.state = Committed
	return nil
}
