// ABOUTME: OPML reading and writing for feed subscription portability
// ABOUTME: Exports subscribed feeds grouped by category and parses files for import

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rhajizada/gazette-cli/internal/api"
)

// Entry is a single feed reference read from or written to an OPML file.
type Entry struct {
	URL    string
	Title  string
	Folder string
}

// XML structs for parsing and writing OPML files
type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// Document is an OPML subscription list.
type Document struct {
	Title   string
	Entries []Entry
}

// Parse reads OPML data from r and flattens it into entries. Nested
// folders collapse to the outermost folder name, which is how most
// readers treat them anyway.
func Parse(r io.Reader) (*Document, error) {
	var raw opmlXML
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	doc := &Document{Title: raw.Head.Title}
	for _, outline := range raw.Body.Outlines {
		doc.Entries = append(doc.Entries, collect(outline, "")...)
	}
	return doc, nil
}

// ParseFile reads OPML data from a file.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func collect(outline outlineXML, folder string) []Entry {
	if outline.XMLURL != "" {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		return []Entry{{URL: outline.XMLURL, Title: title, Folder: folder}}
	}

	name := folder
	if name == "" {
		name = outline.Text
	}
	var entries []Entry
	for _, child := range outline.Children {
		entries = append(entries, collect(child, name)...)
	}
	return entries
}

// FromFeeds builds a document from server feeds, using each feed's
// first category as its folder. Feeds without a feed link are skipped
// since there is nothing a reader could subscribe to.
func FromFeeds(title string, feeds []api.Feed) *Document {
	doc := &Document{Title: title}
	for _, feed := range feeds {
		u := feed.FeedLink
		if u == "" {
			u = feed.Link
		}
		if u == "" {
			continue
		}
		folder := ""
		if len(feed.Categories) > 0 {
			folder = feed.Categories[0]
		}
		doc.Entries = append(doc.Entries, Entry{
			URL:    u,
			Title:  feed.Title,
			Folder: folder,
		})
	}
	return doc
}

// Write serializes the document as OPML 2.0. Entries sharing a folder
// are grouped under one outline; folder order is alphabetical with
// root-level entries first.
func (d *Document) Write(w io.Writer) error {
	byFolder := make(map[string][]Entry)
	for _, e := range d.Entries {
		byFolder[e.Folder] = append(byFolder[e.Folder], e)
	}

	folders := make([]string, 0, len(byFolder))
	for folder := range byFolder {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	body := bodyXML{}
	for _, folder := range folders {
		children := make([]outlineXML, 0, len(byFolder[folder]))
		for _, e := range byFolder[folder] {
			children = append(children, outlineXML{
				Text:   e.Title,
				Title:  e.Title,
				Type:   "rss",
				XMLURL: e.URL,
			})
		}
		if folder == "" {
			body.Outlines = append(body.Outlines, children...)
			continue
		}
		body.Outlines = append(body.Outlines, outlineXML{
			Text:     folder,
			Children: children,
		})
	}

	raw := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: d.Title},
		Body:    body,
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write OPML: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
