// ABOUTME: Field-accessor descriptors binding the view engine to Gazette entities
// ABOUTME: Declares which fields are searchable and which two are sortable per kind

package view

import (
	"time"

	"github.com/rhajizada/gazette-cli/internal/api"
)

// FeedFields searches title and description; sorts by title or the
// feed's last update.
func FeedFields() Fields[api.Feed] {
	return Fields[api.Feed]{
		SearchText: func(f api.Feed) []string {
			return []string{f.Title, f.Description}
		},
		StringKey:   func(f api.Feed) string { return f.Title },
		TimeKey:     func(f api.Feed) *time.Time { return f.LastUpdatedAt },
		StringLabel: "title",
		TimeLabel:   "updated",
	}
}

// ItemFields searches title and description; sorts by title or publish
// time.
func ItemFields() Fields[api.Item] {
	return Fields[api.Item]{
		SearchText: func(i api.Item) []string {
			return []string{i.Title, i.Description}
		},
		StringKey:   func(i api.Item) string { return i.Title },
		TimeKey:     func(i api.Item) *time.Time { return i.PublishedParsed },
		StringLabel: "title",
		TimeLabel:   "published",
	}
}

// CollectionFields searches the name; sorts by name or last update.
func CollectionFields() Fields[api.Collection] {
	return Fields[api.Collection]{
		SearchText:  func(c api.Collection) []string { return []string{c.Name} },
		StringKey:   func(c api.Collection) string { return c.Name },
		TimeKey:     func(c api.Collection) *time.Time { return c.LastUpdated },
		StringLabel: "name",
		TimeLabel:   "updated",
	}
}

// CategoryFields treats the bare label as both search text and string
// key; categories have no timestamp, so the time key pins every label
// to epoch 0 and the cycle's time states degrade to insertion order.
func CategoryFields() Fields[string] {
	return Fields[string]{
		SearchText:  func(c string) []string { return []string{c} },
		StringKey:   func(c string) string { return c },
		TimeKey:     func(string) *time.Time { return nil },
		StringLabel: "name",
		TimeLabel:   "name",
	}
}
