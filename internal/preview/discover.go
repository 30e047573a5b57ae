// ABOUTME: Feed URL discovery for site URLs pasted into feeds add
// ABOUTME: HTML link-alternate extraction first, common path probing second

package preview

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoFeedFound means the URL is neither a feed nor a page that
// advertises one.
var ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")

var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/atom",
	"/index.xml",
	"/feeds/posts/default",
}

// discoverFeedURL locates the feed advertised by an HTML page. body is
// the page already fetched from rawURL.
func discoverFeedURL(ctx context.Context, rawURL string, body []byte) (string, error) {
	base, err := url.Parse(rawURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", ErrNoFeedFound
	}

	for _, candidate := range feedLinks(body, base) {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if verified, err := fetchBody(ctx, candidate); err == nil {
			if _, ok := parseFeed(candidate, verified); ok {
				return candidate, nil
			}
		}
	}

	probeBase := &url.URL{Scheme: base.Scheme, Host: base.Host}
	for _, path := range commonFeedPaths {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		candidate := probeBase.String() + path
		if verified, err := fetchBody(ctx, candidate); err == nil {
			if _, ok := parseFeed(candidate, verified); ok {
				return candidate, nil
			}
		}
	}

	return "", ErrNoFeedFound
}

// feedLinks extracts <link rel="alternate"> feed URLs from an HTML
// document, resolved against base.
func feedLinks(body []byte, base *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				}
			}
			if rel == "alternate" && isFeedContentType(linkType) && href != "" {
				if ref, err := url.Parse(href); err == nil {
					links = append(links, base.ResolveReference(ref).String())
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
