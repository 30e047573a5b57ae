// ABOUTME: Typed HTTP client for the Gazette REST API
// ABOUTME: Attaches the bearer credential and decodes list/detail/mutation envelopes

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response body is kept for the
// user-visible message.
const maxErrorBody = 4 * 1024

// TokenSource supplies the current bearer credential. ok is false while
// no session exists; the client refuses to issue the request in that case.
type TokenSource interface {
	Token() (token string, ok bool)
}

// StaticToken is a TokenSource for a fixed credential, used in tests.
type StaticToken string

func (s StaticToken) Token() (string, bool) { return string(s), s != "" }

// Client issues authenticated requests against a Gazette server.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New creates a Client for the server at baseURL (scheme + host, no
// trailing /api). Every secured call pulls the credential from tokens.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrNoSession is returned when a secured call is attempted without a
// credential. No request is issued in that case.
var ErrNoSession = &Error{StatusCode: http.StatusUnauthorized, Message: "no active session"}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, ok := c.tokens.Token()
	if !ok {
		return ErrNoSession
	}

	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// ListFeeds retrieves a page of feeds. When subscribedOnly is true only
// feeds the user is subscribed to are returned.
func (c *Client) ListFeeds(ctx context.Context, subscribedOnly bool, limit, offset int) (*ListFeedsResponse, error) {
	q := pageQuery(limit, offset)
	if subscribedOnly {
		q.Set("subscribedOnly", "true")
	}
	var resp ListFeedsResponse
	if err := c.do(ctx, http.MethodGet, "/feeds", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateFeed imports a feed by URL and subscribes the user to it.
func (c *Client) CreateFeed(ctx context.Context, feedURL string) (*Feed, error) {
	var feed Feed
	if err := c.do(ctx, http.MethodPost, "/feeds", nil, CreateFeedRequest{FeedURL: feedURL}, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// GetFeed retrieves a single feed by ID.
func (c *Client) GetFeed(ctx context.Context, feedID string) (*Feed, error) {
	var feed Feed
	if err := c.do(ctx, http.MethodGet, "/feeds/"+url.PathEscape(feedID), nil, nil, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// DeleteFeed removes a feed from the server.
func (c *Client) DeleteFeed(ctx context.Context, feedID string) error {
	return c.do(ctx, http.MethodDelete, "/feeds/"+url.PathEscape(feedID), nil, nil, nil)
}

// ListFeedItems retrieves a page of items belonging to a feed.
func (c *Client) ListFeedItems(ctx context.Context, feedID string, limit, offset int) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	path := "/feeds/" + url.PathEscape(feedID) + "/items"
	if err := c.do(ctx, http.MethodGet, path, pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Subscribe subscribes the current user to a feed.
func (c *Client) Subscribe(ctx context.Context, feedID string) (*SubscribeResponse, error) {
	var resp SubscribeResponse
	path := "/feeds/" + url.PathEscape(feedID) + "/subscribe"
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unsubscribe removes the current user's subscription to a feed.
func (c *Client) Unsubscribe(ctx context.Context, feedID string) error {
	return c.do(ctx, http.MethodDelete, "/feeds/"+url.PathEscape(feedID)+"/subscribe", nil, nil, nil)
}

// ListLikedItems retrieves a page of the user's liked items.
func (c *Client) ListLikedItems(ctx context.Context, limit, offset int) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	if err := c.do(ctx, http.MethodGet, "/items", pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItem retrieves a single item by ID.
func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(itemID), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItemCollections retrieves a page of the collections containing an item.
func (c *Client) ListItemCollections(ctx context.Context, itemID string, limit, offset int) (*ListCollectionsResponse, error) {
	var resp ListCollectionsResponse
	path := "/items/" + url.PathEscape(itemID) + "/collections"
	if err := c.do(ctx, http.MethodGet, path, pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LikeItem marks an item as liked by the current user.
func (c *Client) LikeItem(ctx context.Context, itemID string) (*LikeResponse, error) {
	var resp LikeResponse
	if err := c.do(ctx, http.MethodPost, "/items/"+url.PathEscape(itemID)+"/like", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnlikeItem removes the current user's like from an item.
func (c *Client) UnlikeItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(itemID)+"/like", nil, nil, nil)
}

// ListCollections retrieves a page of the user's collections.
func (c *Client) ListCollections(ctx context.Context, limit, offset int) (*ListCollectionsResponse, error) {
	var resp ListCollectionsResponse
	if err := c.do(ctx, http.MethodGet, "/collections", pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCollection creates a named collection for the current user.
func (c *Client) CreateCollection(ctx context.Context, name string) (*Collection, error) {
	var coll Collection
	if err := c.do(ctx, http.MethodPost, "/collections", nil, CreateCollectionRequest{Name: name}, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

// GetCollection retrieves a single collection by ID.
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*Collection, error) {
	var coll Collection
	if err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(collectionID), nil, nil, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

// DeleteCollection deletes a collection by ID.
func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(collectionID), nil, nil, nil)
}

// ListCollectionItems retrieves a page of items in a collection.
func (c *Client) ListCollectionItems(ctx context.Context, collectionID string, limit, offset int) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	path := "/collections/" + url.PathEscape(collectionID) + "/items"
	if err := c.do(ctx, http.MethodGet, path, pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItemToCollection adds an item to a collection.
func (c *Client) AddItemToCollection(ctx context.Context, collectionID, itemID string) (*AddToCollectionResponse, error) {
	var resp AddToCollectionResponse
	path := "/collections/" + url.PathEscape(collectionID) + "/item/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveItemFromCollection removes an item from a collection.
func (c *Client) RemoveItemFromCollection(ctx context.Context, collectionID, itemID string) error {
	path := "/collections/" + url.PathEscape(collectionID) + "/item/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListCategories retrieves a page of category labels.
func (c *Client) ListCategories(ctx context.Context, limit, offset int) (*ListCategoriesResponse, error) {
	var resp ListCategoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCategoryItems retrieves a page of items labeled with any of the
// given categories.
func (c *Client) ListCategoryItems(ctx context.Context, names []string, limit, offset int) (*ListItemsResponse, error) {
	q := pageQuery(limit, offset)
	for _, name := range names {
		q.Add("name", name)
	}
	var resp ListItemsResponse
	if err := c.do(ctx, http.MethodGet, "/categories/items", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSubscribedItems retrieves a page of items from subscribed feeds.
func (c *Client) ListSubscribedItems(ctx context.Context, limit, offset int) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	if err := c.do(ctx, http.MethodGet, "/subscribed", pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSuggestedItems retrieves a page of items suggested for the user.
func (c *Client) ListSuggestedItems(ctx context.Context, limit, offset int) (*ListItemsResponse, error) {
	var resp ListItemsResponse
	if err := c.do(ctx, http.MethodGet, "/suggested", pageQuery(limit, offset), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginURL returns the server's login entry point with redirect pointing
// back at the given callback URL.
func (c *Client) LoginURL(callback string) string {
	return c.baseURL + "/login?redirect=" + url.QueryEscape(callback)
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string { return c.baseURL }
