// ABOUTME: Set-valued toggle for collection membership of a single item
// ABOUTME: Keeps the id set and the displayed collection list consistent without refetch

package toggle

import (
	"context"
	"sync"

	"github.com/rhajizada/gazette-cli/internal/api"
)

// Membership tracks which collections contain one item. Add/remove
// mutations are guarded per collection id, so toggles against different
// collections may be in flight concurrently.
type Membership struct {
	mu       sync.Mutex
	inFlight map[string]bool
	included map[string]bool
	list     []api.Collection
}

// NewMembership seeds the set with the collections the server reports
// as containing the item.
func NewMembership(containing []api.Collection) *Membership {
	m := &Membership{
		inFlight: make(map[string]bool),
		included: make(map[string]bool, len(containing)),
		list:     make([]api.Collection, len(containing)),
	}
	copy(m.list, containing)
	for _, c := range containing {
		m.included[c.ID] = true
	}
	return m
}

// Contains reports whether the item is cached as a member of the
// collection.
func (m *Membership) Contains(collectionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.included[collectionID]
}

// Collections returns the cached list of collections containing the
// item, in display order.
func (m *Membership) Collections() []api.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.Collection, len(m.list))
	copy(out, m.list)
	return out
}

// Toggle adds the item to coll when absent and removes it when present.
// A toggle already in flight for the same collection fails fast with
// ErrInFlight; other collections are unaffected. On success both the id
// set and the display list are updated together.
func (m *Membership) Toggle(ctx context.Context, coll api.Collection, add, remove Op) error {
	m.mu.Lock()
	if m.inFlight[coll.ID] {
		m.mu.Unlock()
		return ErrInFlight
	}
	m.inFlight[coll.ID] = true
	included := m.included[coll.ID]
	op := add
	if included {
		op = remove
	}
	m.mu.Unlock()

	err := op(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, coll.ID)
	if err != nil {
		return err
	}

	if included {
		delete(m.included, coll.ID)
		for i, c := range m.list {
			if c.ID == coll.ID {
				m.list = append(m.list[:i], m.list[i+1:]...)
				break
			}
		}
	} else {
		m.included[coll.ID] = true
		m.list = append(m.list, coll)
	}
	return nil
}
