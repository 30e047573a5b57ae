// ABOUTME: Local feed preview shown before a URL is submitted to the server
// ABOUTME: Fetches and parses the feed with gofeed so the user confirms the right source

package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// maxResponseSize caps how much of a candidate feed is read.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Preview summarizes a feed before it is imported server-side.
type Preview struct {
	FeedURL     string
	Title       string
	Description string
	ItemCount   int
	Recent      []string // newest entry titles, at most five
}

// Load fetches rawURL and builds a Preview. When the URL serves HTML
// instead of a feed, discovery (discover.go) kicks in to locate the
// actual feed link. The returned Preview's FeedURL is what should be
// submitted to the server.
func Load(ctx context.Context, rawURL string) (*Preview, error) {
	body, err := fetchBody(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if p, ok := parseFeed(rawURL, body); ok {
		return p, nil
	}

	feedURL, err := discoverFeedURL(ctx, rawURL, body)
	if err != nil {
		return nil, err
	}

	body, err = fetchBody(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	p, ok := parseFeed(feedURL, body)
	if !ok {
		return nil, fmt.Errorf("discovered %s but it did not parse as a feed", feedURL)
	}
	return p, nil
}

// parseFeed attempts to interpret body as RSS/Atom/JSON feed content.
func parseFeed(feedURL string, body []byte) (*Preview, bool) {
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, false
	}

	p := &Preview{
		FeedURL:     feedURL,
		Title:       feed.Title,
		Description: feed.Description,
		ItemCount:   len(feed.Items),
	}
	for _, item := range feed.Items {
		if len(p.Recent) == 5 {
			break
		}
		p.Recent = append(p.Recent, item.Title)
	}
	return p, true
}

func fetchBody(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", "gazette/1.0 (feed preview)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > maxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", maxResponseSize)
	}
	return body, nil
}
