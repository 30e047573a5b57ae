// ABOUTME: Pure client-side view engine: filter, two-key sort, fixed-size pagination
// ABOUTME: Generic over entity type via a small field-accessor descriptor

package view

import (
	"sort"
	"strings"
	"time"
)

// SortKind selects which of an entity's two sortable fields to order by.
type SortKind int

const (
	// SortString orders by the entity's string key, lexicographically.
	SortString SortKind = iota
	// SortTime orders by the entity's timestamp key, numerically.
	// Entities without a timestamp sort as epoch 0.
	SortTime
)

// SortState is the current sort key and direction.
type SortState struct {
	Key       SortKind
	Ascending bool
}

// Next advances the sort toggle through its four-state cycle:
// (string,asc) -> (string,desc) -> (time,asc) -> (time,desc) -> back.
func (s SortState) Next() SortState {
	switch {
	case s.Key == SortString && s.Ascending:
		return SortState{Key: SortString, Ascending: false}
	case s.Key == SortString:
		return SortState{Key: SortTime, Ascending: true}
	case s.Ascending:
		return SortState{Key: SortTime, Ascending: false}
	default:
		return SortState{Key: SortString, Ascending: true}
	}
}

// DefaultSort is the initial sort every list view starts with: newest
// first by timestamp.
func DefaultSort() SortState {
	return SortState{Key: SortTime, Ascending: false}
}

// Fields describes how the view engine reads an entity: which text
// fields are searched and which two fields are sortable. Labels name
// the sort keys in UI output.
type Fields[T any] struct {
	SearchText  func(T) []string
	StringKey   func(T) string
	TimeKey     func(T) *time.Time
	StringLabel string
	TimeLabel   string
}

// SortLabel returns the human-readable name for the given sort key.
func (f Fields[T]) SortLabel(s SortState) string {
	if s.Key == SortTime {
		return f.TimeLabel
	}
	return f.StringLabel
}

// Query is the client-side view state: free-text filter, sort, and the
// 1-based page to display.
type Query struct {
	Search   string
	Sort     SortState
	Page     int
	PageSize int
}

// Result is one rendered page of a filtered, sorted collection.
type Result[T any] struct {
	PageItems  []T
	Page       int // clamped to [1, max(TotalPages, 1)]
	TotalPages int // 0 when nothing matched
	Filtered   int // matching count before pagination
}

// Apply filters, sorts, and paginates all according to q. It is a pure
// function: identical inputs give identical output and all is never
// mutated.
func Apply[T any](all []T, f Fields[T], q Query) Result[T] {
	matched := filter(all, f, q.Search)
	sortItems(matched, f, q.Sort)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Result[T]{
		PageItems:  matched[start:end],
		Page:       page,
		TotalPages: totalPages,
		Filtered:   len(matched),
	}
}

// Matches reports whether a single entity satisfies the free-text
// filter: empty search matches everything, otherwise a case-insensitive
// substring match against any designated search field.
func Matches[T any](entity T, f Fields[T], search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range f.SearchText(entity) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func filter[T any](all []T, f Fields[T], search string) []T {
	matched := make([]T, 0, len(all))
	for _, entity := range all {
		if Matches(entity, f, search) {
			matched = append(matched, entity)
		}
	}
	return matched
}

func sortItems[T any](items []T, f Fields[T], s SortState) {
	compare := func(a, b T) int {
		if s.Key == SortString {
			return strings.Compare(strings.ToLower(f.StringKey(a)), strings.ToLower(f.StringKey(b)))
		}
		ta, tb := timeMillis(f.TimeKey(a)), timeMillis(f.TimeKey(b))
		switch {
		case ta < tb:
			return -1
		case ta > tb:
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j])
		if s.Ascending {
			return c < 0
		}
		return c > 0
	})
}

func timeMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
