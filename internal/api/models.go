// ABOUTME: Wire types for the Gazette REST API matching its swagger contracts
// ABOUTME: List envelopes carry limit/offset/total_count plus the entity slice

package api

import (
	"encoding/json"
	"time"
)

// Person is an author attached to a feed or item.
type Person struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Feed represents a syndication source known to the server.
// Subscribed and SubscribedAt are projections for the current user.
type Feed struct {
	ID              string          `json:"id"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Link            string          `json:"link,omitempty"`
	FeedLink        string          `json:"feed_link,omitempty"`
	Links           []string        `json:"links,omitempty"`
	FeedType        string          `json:"feed_type,omitempty"`
	FeedVersion     string          `json:"feed_version,omitempty"`
	Language        string          `json:"language,omitempty"`
	Copyright       string          `json:"copyright,omitempty"`
	Generator       string          `json:"generator,omitempty"`
	Categories      []string        `json:"categories,omitempty"`
	Authors         []Person        `json:"authors,omitempty"`
	Image           json.RawMessage `json:"image,omitempty"`
	PublishedParsed *time.Time      `json:"published_parsed,omitempty"`
	UpdatedParsed   *time.Time      `json:"updated_parsed,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	LastUpdatedAt   *time.Time      `json:"last_updated_at,omitempty"`
	Subscribed      bool            `json:"subscribed"`
	SubscribedAt    *time.Time      `json:"subscribed_at,omitempty"`
}

// Item represents a single syndicated entry belonging to a feed.
// Liked and LikedAt are projections for the current user.
type Item struct {
	ID              string          `json:"id"`
	FeedID          string          `json:"feed_id,omitempty"`
	GUID            string          `json:"guid,omitempty"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	Content         string          `json:"content,omitempty"`
	Link            string          `json:"link,omitempty"`
	Links           []string        `json:"links,omitempty"`
	Image           json.RawMessage `json:"image,omitempty"`
	Enclosures      json.RawMessage `json:"enclosures,omitempty"`
	Authors         []Person        `json:"authors,omitempty"`
	Categories      []string        `json:"categories,omitempty"`
	PublishedParsed *time.Time      `json:"published_parsed,omitempty"`
	UpdatedParsed   *time.Time      `json:"updated_parsed,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	Liked           bool            `json:"liked"`
	LikedAt         *time.Time      `json:"liked_at,omitempty"`
}

// Collection is a user-defined named grouping of items.
type Collection struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// User is the current user's profile. The server emits camelCase here,
// unlike every other contract.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email,omitempty"`
	Sub           string     `json:"sub,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
}

// ListFeedsResponse is the envelope returned by GET /api/feeds.
type ListFeedsResponse struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	TotalCount int64  `json:"total_count"`
	Feeds      []Feed `json:"feeds"`
}

// ListItemsResponse is the envelope returned by the item list endpoints.
type ListItemsResponse struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	TotalCount int64  `json:"total_count"`
	Items      []Item `json:"items"`
}

// ListCollectionsResponse is the envelope returned by the collection
// list endpoints.
type ListCollectionsResponse struct {
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
	TotalCount  int64        `json:"total_count"`
	Collections []Collection `json:"collections"`
}

// ListCategoriesResponse is the envelope returned by GET /api/categories.
type ListCategoriesResponse struct {
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
	TotalCount int64    `json:"total_count"`
	Categories []string `json:"categories"`
}

// SubscribeResponse is returned by PUT /api/feeds/{id}/subscribe.
type SubscribeResponse struct {
	SubscribedAt *time.Time `json:"subscribed_at,omitempty"`
}

// LikeResponse is returned by POST /api/items/{id}/like.
type LikeResponse struct {
	LikedAt *time.Time `json:"liked_at,omitempty"`
}

// AddToCollectionResponse is returned by POST /api/collections/{id}/item/{itemID}.
type AddToCollectionResponse struct {
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// CreateFeedRequest is the body of POST /api/feeds.
type CreateFeedRequest struct {
	FeedURL string `json:"feed_url"`
}

// CreateCollectionRequest is the body of POST /api/collections.
type CreateCollectionRequest struct {
	Name string `json:"name"`
}
