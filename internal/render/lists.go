// ABOUTME: Terminal list rendering: entity rows, page strip, notifications
// ABOUTME: Color conventions follow the rest of the CLI: faint ids/dates, bold titles

package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

const timeLayout = "02 Jan 06 15:04"

// ShortID returns the first 8 characters of an entity id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FeedRow prints one feed line: id, subscription marker, title, updated.
func FeedRow(f api.Feed) {
	fmt.Print(faint(ShortID(f.ID)))
	if f.Subscribed {
		fmt.Print(" ✓ ")
	} else {
		fmt.Print("   ")
	}

	title := f.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Print(title)

	if f.LastUpdatedAt != nil {
		fmt.Print(" ", faint(f.LastUpdatedAt.Format(timeLayout)))
	}
	fmt.Println()
}

// ItemRow prints one item line: id, like marker, title, published.
func ItemRow(i api.Item) {
	fmt.Print(faint(ShortID(i.ID)))
	if i.Liked {
		fmt.Print(" ♥ ")
	} else {
		fmt.Print("   ")
	}

	title := i.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Print(title)

	if i.PublishedParsed != nil {
		fmt.Print(" ", faint(i.PublishedParsed.Format(timeLayout)))
	}
	fmt.Println()
}

// CollectionRow prints one collection line: id, name, last update.
func CollectionRow(c api.Collection) {
	fmt.Print(faint(ShortID(c.ID)), " ")
	fmt.Print(bold(c.Name))
	if c.LastUpdated != nil {
		fmt.Print(" ", faint(c.LastUpdated.Format(timeLayout)))
	}
	fmt.Println()
}

// PageStrip renders the windowed page-number line under a list, e.g.
// "1 … 8 [9] 10 … 20 (237 matches)".
func PageStrip(current, total, matches int) string {
	refs := view.Window(current, total)
	if len(refs) == 0 {
		return faint("no matches")
	}

	parts := make([]string, 0, len(refs)+1)
	for _, ref := range refs {
		switch {
		case ref.Ellipsis:
			parts = append(parts, faint("…"))
		case ref.N == current:
			parts = append(parts, bold(fmt.Sprintf("[%d]", ref.N)))
		default:
			parts = append(parts, fmt.Sprintf("%d", ref.N))
		}
	}
	parts = append(parts, faint(fmt.Sprintf("(%d matches)", matches)))
	return strings.Join(parts, " ")
}

// SortIndicator describes the active sort for the list header, e.g.
// "sorted by published ↓".
func SortIndicator[T any](f view.Fields[T], s view.SortState) string {
	arrow := "↓"
	if s.Ascending {
		arrow = "↑"
	}
	return faint(fmt.Sprintf("sorted by %s %s", f.SortLabel(s), arrow))
}

// Success prints a success notification.
func Success(format string, args ...any) {
	fmt.Printf("%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// Failure prints a failure notification.
func Failure(format string, args ...any) {
	fmt.Printf("%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}

// Header prints a bold section header.
func Header(text string) {
	fmt.Println(bold(text))
}

// Link renders a URL in the conventional color.
func Link(url string) string {
	return cyan(url)
}

// Progress renders the chunked-prefetch progress line used by the
// suggested view, e.g. "Loading (200/237)".
func Progress(loaded int, total int64) string {
	return fmt.Sprintf("\rLoading (%d/%d)", loaded, total)
}
