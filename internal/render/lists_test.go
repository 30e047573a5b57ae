// ABOUTME: Tests for list rendering helpers
// ABOUTME: Color is disabled so expected strings are plain text

package render

import (
	"testing"

	"github.com/fatih/color"

	"github.com/rhajizada/gazette-cli/internal/view"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"b9e5cbc2-6d3f-4a38-a6d6-000000000001", "b9e5cbc2"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ShortID(tt.id); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestPageStrip(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		matches int
		want    string
	}{
		{"middle of long run", 9, 20, 237, "1 … 7 8 [9] 10 11 … 20 (237 matches)"},
		{"single page", 1, 1, 4, "[1] (4 matches)"},
		{"short run stays contiguous", 4, 8, 80, "1 2 3 [4] 5 6 7 8 (80 matches)"},
		{"empty", 1, 0, 0, "no matches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageStrip(tt.current, tt.total, tt.matches); got != tt.want {
				t.Errorf("PageStrip(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.matches, got, tt.want)
			}
		})
	}
}

func TestSortIndicator(t *testing.T) {
	fields := view.FeedFields()

	asc := view.SortState{Key: view.SortString, Ascending: true}
	if got := SortIndicator(fields, asc); got != "sorted by title ↑" {
		t.Errorf("ascending indicator = %q", got)
	}

	desc := view.SortState{Key: view.SortTime, Ascending: false}
	if got := SortIndicator(fields, desc); got != "sorted by updated ↓" {
		t.Errorf("descending indicator = %q", got)
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(200, 237); got != "\rLoading (200/237)" {
		t.Errorf("Progress(200, 237) = %q", got)
	}
}
