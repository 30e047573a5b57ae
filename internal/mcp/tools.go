// ABOUTME: MCP tool definitions and handlers for Gazette feed and item operations
// ABOUTME: List tools prefetch the full collection and filter, sort, and page locally

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/timeutil"
	"github.com/rhajizada/gazette-cli/internal/view"
)

// Type definitions for input/output structures

type ListFeedsInput struct {
	Search         *string `json:"search,omitempty"`
	Sort           *string `json:"sort,omitempty"`
	Ascending      *bool   `json:"ascending,omitempty"`
	Page           *int    `json:"page,omitempty"`
	PageSize       *int    `json:"page_size,omitempty"`
	SubscribedOnly *bool   `json:"subscribed_only,omitempty"`
}

type FeedOutput struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	Link          string     `json:"link,omitempty"`
	FeedLink      string     `json:"feed_link,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	Subscribed    bool       `json:"subscribed"`
	SubscribedAt  *time.Time `json:"subscribed_at,omitempty"`
}

type ListFeedsOutput struct {
	Feeds      []FeedOutput `json:"feeds"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Matches    int          `json:"matches"`
}

type AddFeedInput struct {
	URL string `json:"url"`
}

type FeedIDInput struct {
	FeedID string `json:"feed_id"`
}

type RemoveFeedOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	FeedID  string `json:"feed_id"`
}

type SubscriptionOutput struct {
	FeedID       string     `json:"feed_id"`
	Subscribed   bool       `json:"subscribed"`
	SubscribedAt *time.Time `json:"subscribed_at,omitempty"`
}

type ListItemsInput struct {
	Scope        string   `json:"scope"`
	FeedID       *string  `json:"feed_id,omitempty"`
	CollectionID *string  `json:"collection_id,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Search       *string  `json:"search,omitempty"`
	Sort         *string  `json:"sort,omitempty"`
	Ascending    *bool    `json:"ascending,omitempty"`
	Since        *string  `json:"since,omitempty"`
	Page         *int     `json:"page,omitempty"`
	PageSize     *int     `json:"page_size,omitempty"`
}

type ItemOutput struct {
	ID              string     `json:"id"`
	FeedID          string     `json:"feed_id,omitempty"`
	Title           string     `json:"title,omitempty"`
	Link            string     `json:"link,omitempty"`
	Categories      []string   `json:"categories,omitempty"`
	PublishedParsed *time.Time `json:"published_parsed,omitempty"`
	Liked           bool       `json:"liked"`
	LikedAt         *time.Time `json:"liked_at,omitempty"`
}

type ListItemsOutput struct {
	Items      []ItemOutput `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Matches    int          `json:"matches"`
}

type ItemIDInput struct {
	ItemID string `json:"item_id"`
}

type GetItemOutput struct {
	ID              string     `json:"id"`
	FeedID          string     `json:"feed_id,omitempty"`
	Title           string     `json:"title,omitempty"`
	Link            string     `json:"link,omitempty"`
	Authors         []string   `json:"authors,omitempty"`
	Categories      []string   `json:"categories,omitempty"`
	PublishedParsed *time.Time `json:"published_parsed,omitempty"`
	Content         string     `json:"content,omitempty"`
	Liked           bool       `json:"liked"`
	LikedAt         *time.Time `json:"liked_at,omitempty"`
	Collections     []string   `json:"collections,omitempty"`
}

type LikeOutput struct {
	ItemID  string     `json:"item_id"`
	Liked   bool       `json:"liked"`
	LikedAt *time.Time `json:"liked_at,omitempty"`
}

type ListCollectionsInput struct {
	Search   *string `json:"search,omitempty"`
	Page     *int    `json:"page,omitempty"`
	PageSize *int    `json:"page_size,omitempty"`
}

type CollectionOutput struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

type ListCollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
	Page        int                `json:"page"`
	TotalPages  int                `json:"total_pages"`
	Matches     int                `json:"matches"`
}

type CreateCollectionInput struct {
	Name string `json:"name"`
}

type CollectionIDInput struct {
	CollectionID string `json:"collection_id"`
}

type CollectionItemInput struct {
	CollectionID string `json:"collection_id"`
	ItemID       string `json:"item_id"`
}

type CollectionEditOutput struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	CollectionID string     `json:"collection_id"`
	ItemID       string     `json:"item_id,omitempty"`
	AddedAt      *time.Time `json:"added_at,omitempty"`
}

type UserOutput struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerListFeedsTool()
	s.registerAddFeedTool()
	s.registerRemoveFeedTool()
	s.registerSubscribeFeedTool()
	s.registerUnsubscribeFeedTool()
	s.registerListItemsTool()
	s.registerGetItemTool()
	s.registerLikeItemTool()
	s.registerUnlikeItemTool()
	s.registerListCollectionsTool()
	s.registerCreateCollectionTool()
	s.registerDeleteCollectionTool()
	s.registerCollectItemTool()
	s.registerUncollectItemTool()
	s.registerGetUserTool()
}

func (s *Server) registerListFeedsTool() {
	tool := mcp.Tool{
		Name:        "list_feeds",
		Description: "List the feeds known to the Gazette server. The full set is fetched and then filtered, sorted, and paged locally. Use 'search' for a case-insensitive substring match on title and description, 'sort' to order by 'title' or 'updated', and 'page' to move through results. Use this to find feed IDs before subscribing or listing a feed's items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Optional case-insensitive substring to match against feed title and description. Example: 'golang'",
				},
				"sort": map[string]interface{}{
					"type":        "string",
					"description": "Sort key: 'title' or 'updated'. Default: 'updated'",
				},
				"ascending": map[string]interface{}{
					"type":        "boolean",
					"description": "Sort ascending instead of descending. Default: false",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page of results to return, starting at 1. Out-of-range pages are clamped.",
				},
				"page_size": map[string]interface{}{
					"type":        "integer",
					"description": "Feeds per page. Default: 10",
				},
				"subscribed_only": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, only feeds the user is subscribed to are listed. Default: false",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListFeeds)
}

func (s *Server) registerAddFeedTool() {
	tool := mcp.Tool{
		Name:        "add_feed",
		Description: "Import a new RSS/Atom feed into the Gazette server by URL and subscribe the user to it. The server fetches and parses the feed itself. Returns the created feed with its unique ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "The feed URL (RSS or Atom). Example: 'https://example.com/feed.xml'",
				},
			},
			Required: []string{"url"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleAddFeed)
}

func (s *Server) registerRemoveFeedTool() {
	tool := mcp.Tool{
		Name:        "remove_feed",
		Description: "Delete a feed from the Gazette server by ID. The feed's items are removed for every user, not just the current one. This action cannot be undone. Use list_feeds to find feed IDs.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"feed_id": map[string]interface{}{
					"type":        "string",
					"description": "The feed ID to delete. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"feed_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRemoveFeed)
}

func (s *Server) registerSubscribeFeedTool() {
	tool := mcp.Tool{
		Name:        "subscribe_feed",
		Description: "Subscribe the current user to a feed by ID. Subscribed feeds contribute to the subscribed items timeline. Returns the subscription timestamp.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"feed_id": map[string]interface{}{
					"type":        "string",
					"description": "The feed ID to subscribe to. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"feed_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleSubscribeFeed)
}

func (s *Server) registerUnsubscribeFeedTool() {
	tool := mcp.Tool{
		Name:        "unsubscribe_feed",
		Description: "Unsubscribe the current user from a feed by ID. The feed stays on the server; only the subscription is removed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"feed_id": map[string]interface{}{
					"type":        "string",
					"description": "The feed ID to unsubscribe from. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"feed_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleUnsubscribeFeed)
}

func (s *Server) registerListItemsTool() {
	tool := mcp.Tool{
		Name:        "list_items",
		Description: "List items from one of several scopes: 'subscribed' (the timeline of subscribed feeds), 'liked', 'suggested' (recommendations), 'feed' (one feed's items, requires feed_id), 'collection' (one collection's items, requires collection_id), or 'categories' (items in any of the given categories). Results are filtered, sorted, and paged locally. Use 'search' for a substring match on title and description, 'sort' for 'title' or 'published', and 'since' with 'today', 'yesterday', or 'week' for recent items. Use get_item to read full content.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scope": map[string]interface{}{
					"type":        "string",
					"description": "Item scope: 'subscribed', 'liked', 'suggested', 'feed', 'collection', or 'categories'",
				},
				"feed_id": map[string]interface{}{
					"type":        "string",
					"description": "Feed ID, required when scope is 'feed'",
				},
				"collection_id": map[string]interface{}{
					"type":        "string",
					"description": "Collection ID, required when scope is 'collection'",
				},
				"categories": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Category names, required when scope is 'categories'. Items tagged with any of them match.",
				},
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Optional case-insensitive substring to match against item title and description",
				},
				"sort": map[string]interface{}{
					"type":        "string",
					"description": "Sort key: 'title' or 'published'. Default: 'published'",
				},
				"ascending": map[string]interface{}{
					"type":        "boolean",
					"description": "Sort ascending instead of descending. Default: false",
				},
				"since": map[string]interface{}{
					"type":        "string",
					"description": "Only items published in the named window: 'today', 'yesterday', or 'week'",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page of results to return, starting at 1. Out-of-range pages are clamped.",
				},
				"page_size": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page. Default: 10",
				},
			},
			Required: []string{"scope"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListItems)
}

func (s *Server) registerGetItemTool() {
	tool := mcp.Tool{
		Name:        "get_item",
		Description: "Get the full details of a single item including its content. Content is converted from HTML to Markdown for better readability. Also reports which collections contain the item. Use this after list_items to read the full article.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item ID. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetItem)
}

func (s *Server) registerLikeItemTool() {
	tool := mcp.Tool{
		Name:        "like_item",
		Description: "Like an item by its ID. Liked items appear in the 'liked' scope of list_items. Returns the like timestamp. Use list_items to find item IDs.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item ID to like. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleLikeItem)
}

func (s *Server) registerUnlikeItemTool() {
	tool := mcp.Tool{
		Name:        "unlike_item",
		Description: "Remove a like from an item by its ID. Use list_items with scope 'liked' to find liked items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item ID to unlike. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleUnlikeItem)
}

func (s *Server) registerListCollectionsTool() {
	tool := mcp.Tool{
		Name:        "list_collections",
		Description: "List the current user's collections. Use 'search' for a case-insensitive substring match on the name. Use this to find collection IDs before adding or removing items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Optional case-insensitive substring to match against collection names",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page of results to return, starting at 1",
				},
				"page_size": map[string]interface{}{
					"type":        "integer",
					"description": "Collections per page. Default: 10",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListCollections)
}

func (s *Server) registerCreateCollectionTool() {
	tool := mcp.Tool{
		Name:        "create_collection",
		Description: "Create a new named collection for the current user. Returns the created collection with its unique ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "The collection name. Example: 'Reading List'",
				},
			},
			Required: []string{"name"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleCreateCollection)
}

func (s *Server) registerDeleteCollectionTool() {
	tool := mcp.Tool{
		Name:        "delete_collection",
		Description: "Delete a collection by its ID. The items themselves are not deleted, only the grouping. This action cannot be undone.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"collection_id": map[string]interface{}{
					"type":        "string",
					"description": "The collection ID to delete. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
			},
			Required: []string{"collection_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleDeleteCollection)
}

func (s *Server) registerCollectItemTool() {
	tool := mcp.Tool{
		Name:        "collect_item",
		Description: "Add an item to a collection. Returns the membership timestamp. Use list_collections and list_items to find the IDs.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"collection_id": map[string]interface{}{
					"type":        "string",
					"description": "The collection to add the item to",
				},
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item to add",
				},
			},
			Required: []string{"collection_id", "item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleCollectItem)
}

func (s *Server) registerUncollectItemTool() {
	tool := mcp.Tool{
		Name:        "uncollect_item",
		Description: "Remove an item from a collection. The item itself is unaffected. Use get_item to see which collections contain an item.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"collection_id": map[string]interface{}{
					"type":        "string",
					"description": "The collection to remove the item from",
				},
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item to remove",
				},
			},
			Required: []string{"collection_id", "item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleUncollectItem)
}

func (s *Server) registerGetUserTool() {
	tool := mcp.Tool{
		Name:        "get_user",
		Description: "Get the profile of the currently logged-in Gazette user.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetUser)
}

// Handler implementations

func (s *Server) handleListFeeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListFeedsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	subscribedOnly := input.SubscribedOnly != nil && *input.SubscribedOnly
	feeds, err := bulk.FetchAll(ctx, func(ctx context.Context, limit, offset int) (bulk.Page[api.Feed], error) {
		resp, err := s.client.ListFeeds(ctx, subscribedOnly, limit, offset)
		if err != nil {
			return bulk.Page[api.Feed]{}, err
		}
		return bulk.Page[api.Feed]{Items: resp.Feeds, TotalCount: resp.TotalCount}, nil
	}, s.chunkSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}

	f := view.FeedFields()
	q, err := queryFromInput(f, input.Search, input.Sort, input.Ascending, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}
	res := view.Apply(feeds, f, q)

	out := ListFeedsOutput{
		Feeds:      make([]FeedOutput, 0, len(res.PageItems)),
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Matches:    res.Filtered,
	}
	for _, feed := range res.PageItems {
		out.Feeds = append(out.Feeds, feedOutput(feed))
	}

	return jsonResult(out)
}

func (s *Server) handleAddFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input AddFeedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	parsedURL, err := url.Parse(input.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("feed URL must use http or https scheme, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("feed URL must have a host")
	}

	feed, err := s.client.CreateFeed(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	return jsonResult(feedOutput(*feed))
}

func (s *Server) handleRemoveFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input FeedIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if err := s.client.DeleteFeed(ctx, input.FeedID); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("feed not found: %s", input.FeedID)
		}
		return nil, fmt.Errorf("failed to delete feed: %w", err)
	}

	return jsonResult(RemoveFeedOutput{
		Success: true,
		Message: fmt.Sprintf("Feed %s successfully removed", input.FeedID),
		FeedID:  input.FeedID,
	})
}

func (s *Server) handleSubscribeFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input FeedIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	resp, err := s.client.Subscribe(ctx, input.FeedID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("feed not found: %s", input.FeedID)
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return jsonResult(SubscriptionOutput{
		FeedID:       input.FeedID,
		Subscribed:   true,
		SubscribedAt: resp.SubscribedAt,
	})
}

func (s *Server) handleUnsubscribeFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input FeedIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if err := s.client.Unsubscribe(ctx, input.FeedID); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("feed not found: %s", input.FeedID)
		}
		return nil, fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return jsonResult(SubscriptionOutput{FeedID: input.FeedID, Subscribed: false})
}

func (s *Server) handleListItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListItemsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	list, err := s.itemSource(input)
	if err != nil {
		return nil, err
	}

	items, err := bulk.FetchAll(ctx, list, s.chunkSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	if input.Since != nil {
		r, err := sinceRange(*input.Since)
		if err != nil {
			return nil, err
		}
		kept := items[:0]
		for _, it := range items {
			if r.Contains(it.PublishedParsed) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	f := view.ItemFields()
	q, err := queryFromInput(f, input.Search, input.Sort, input.Ascending, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}
	res := view.Apply(items, f, q)

	out := ListItemsOutput{
		Items:      make([]ItemOutput, 0, len(res.PageItems)),
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Matches:    res.Filtered,
	}
	for _, item := range res.PageItems {
		out.Items = append(out.Items, ItemOutput{
			ID:              item.ID,
			FeedID:          item.FeedID,
			Title:           item.Title,
			Link:            item.Link,
			Categories:      item.Categories,
			PublishedParsed: item.PublishedParsed,
			Liked:           item.Liked,
			LikedAt:         item.LikedAt,
		})
	}

	return jsonResult(out)
}

// itemSource maps the requested scope to the matching list endpoint.
func (s *Server) itemSource(input ListItemsInput) (bulk.ListFunc[api.Item], error) {
	switch input.Scope {
	case "subscribed":
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListSubscribedItems(ctx, limit, offset))
		}, nil
	case "liked":
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListLikedItems(ctx, limit, offset))
		}, nil
	case "suggested":
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListSuggestedItems(ctx, limit, offset))
		}, nil
	case "feed":
		if input.FeedID == nil || *input.FeedID == "" {
			return nil, fmt.Errorf("scope 'feed' requires feed_id")
		}
		feedID := *input.FeedID
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListFeedItems(ctx, feedID, limit, offset))
		}, nil
	case "collection":
		if input.CollectionID == nil || *input.CollectionID == "" {
			return nil, fmt.Errorf("scope 'collection' requires collection_id")
		}
		collID := *input.CollectionID
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListCollectionItems(ctx, collID, limit, offset))
		}, nil
	case "categories":
		if len(input.Categories) == 0 {
			return nil, fmt.Errorf("scope 'categories' requires at least one category name")
		}
		names := input.Categories
		return func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			return itemPage(s.client.ListCategoryItems(ctx, names, limit, offset))
		}, nil
	default:
		return nil, fmt.Errorf("unknown scope %q: use subscribed, liked, suggested, feed, collection, or categories", input.Scope)
	}
}

func (s *Server) handleGetItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ItemIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	item, err := s.client.GetItem(ctx, input.ItemID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("item not found: %s", input.ItemID)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	out := GetItemOutput{
		ID:              item.ID,
		FeedID:          item.FeedID,
		Title:           item.Title,
		Link:            item.Link,
		Categories:      item.Categories,
		PublishedParsed: item.PublishedParsed,
		Content:         render.ToMarkdown(body),
		Liked:           item.Liked,
		LikedAt:         item.LikedAt,
	}
	for _, author := range item.Authors {
		out.Authors = append(out.Authors, author.Name)
	}

	containing, err := bulk.FetchAll(ctx, func(ctx context.Context, limit, offset int) (bulk.Page[api.Collection], error) {
		resp, err := s.client.ListItemCollections(ctx, input.ItemID, limit, offset)
		if err != nil {
			return bulk.Page[api.Collection]{}, err
		}
		return bulk.Page[api.Collection]{Items: resp.Collections, TotalCount: resp.TotalCount}, nil
	}, s.chunkSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list item collections: %w", err)
	}
	for _, c := range containing {
		out.Collections = append(out.Collections, c.Name)
	}

	return jsonResult(out)
}

func (s *Server) handleLikeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ItemIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	resp, err := s.client.LikeItem(ctx, input.ItemID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("item not found: %s", input.ItemID)
		}
		return nil, fmt.Errorf("failed to like item: %w", err)
	}

	return jsonResult(LikeOutput{ItemID: input.ItemID, Liked: true, LikedAt: resp.LikedAt})
}

func (s *Server) handleUnlikeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ItemIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if err := s.client.UnlikeItem(ctx, input.ItemID); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("item not found: %s", input.ItemID)
		}
		return nil, fmt.Errorf("failed to unlike item: %w", err)
	}

	return jsonResult(LikeOutput{ItemID: input.ItemID, Liked: false})
}

func (s *Server) handleListCollections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListCollectionsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	colls, err := bulk.FetchAll(ctx, func(ctx context.Context, limit, offset int) (bulk.Page[api.Collection], error) {
		resp, err := s.client.ListCollections(ctx, limit, offset)
		if err != nil {
			return bulk.Page[api.Collection]{}, err
		}
		return bulk.Page[api.Collection]{Items: resp.Collections, TotalCount: resp.TotalCount}, nil
	}, s.chunkSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	f := view.CollectionFields()
	q, err := queryFromInput(f, input.Search, nil, nil, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}
	res := view.Apply(colls, f, q)

	out := ListCollectionsOutput{
		Collections: make([]CollectionOutput, 0, len(res.PageItems)),
		Page:        res.Page,
		TotalPages:  res.TotalPages,
		Matches:     res.Filtered,
	}
	for _, c := range res.PageItems {
		out.Collections = append(out.Collections, CollectionOutput{
			ID:          c.ID,
			Name:        c.Name,
			LastUpdated: c.LastUpdated,
		})
	}

	return jsonResult(out)
}

func (s *Server) handleCreateCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CreateCollectionInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("collection name must not be empty")
	}

	coll, err := s.client.CreateCollection(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return jsonResult(CollectionOutput{ID: coll.ID, Name: coll.Name, LastUpdated: coll.LastUpdated})
}

func (s *Server) handleDeleteCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CollectionIDInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if err := s.client.DeleteCollection(ctx, input.CollectionID); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("collection not found: %s", input.CollectionID)
		}
		return nil, fmt.Errorf("failed to delete collection: %w", err)
	}

	return jsonResult(CollectionEditOutput{
		Success:      true,
		Message:      fmt.Sprintf("Collection %s successfully deleted", input.CollectionID),
		CollectionID: input.CollectionID,
	})
}

func (s *Server) handleCollectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CollectionItemInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	resp, err := s.client.AddItemToCollection(ctx, input.CollectionID, input.ItemID)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("collection or item not found")
		}
		return nil, fmt.Errorf("failed to add item to collection: %w", err)
	}

	return jsonResult(CollectionEditOutput{
		Success:      true,
		Message:      "Item added to collection",
		CollectionID: input.CollectionID,
		ItemID:       input.ItemID,
		AddedAt:      resp.AddedAt,
	})
}

func (s *Server) handleUncollectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CollectionItemInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if err := s.client.RemoveItemFromCollection(ctx, input.CollectionID, input.ItemID); err != nil {
		if api.IsNotFound(err) {
			return nil, fmt.Errorf("collection or item not found")
		}
		return nil, fmt.Errorf("failed to remove item from collection: %w", err)
	}

	return jsonResult(CollectionEditOutput{
		Success:      true,
		Message:      "Item removed from collection",
		CollectionID: input.CollectionID,
		ItemID:       input.ItemID,
	})
}

func (s *Server) handleGetUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return jsonResult(UserOutput{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Shared helpers

func itemPage(resp *api.ListItemsResponse, err error) (bulk.Page[api.Item], error) {
	if err != nil {
		return bulk.Page[api.Item]{}, err
	}
	return bulk.Page[api.Item]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
}

func feedOutput(feed api.Feed) FeedOutput {
	return FeedOutput{
		ID:            feed.ID,
		Title:         feed.Title,
		Description:   feed.Description,
		Link:          feed.Link,
		FeedLink:      feed.FeedLink,
		Categories:    feed.Categories,
		LastUpdatedAt: feed.LastUpdatedAt,
		Subscribed:    feed.Subscribed,
		SubscribedAt:  feed.SubscribedAt,
	}
}

func queryFromInput[T any](f view.Fields[T], search, sortKey *string, ascending *bool, page, pageSize *int) (view.Query, error) {
	q := view.Query{Sort: view.DefaultSort(), Page: 1, PageSize: 10}
	if search != nil {
		q.Search = *search
	}
	if sortKey != nil && *sortKey != "" {
		switch *sortKey {
		case f.StringLabel:
			q.Sort.Key = view.SortString
		case f.TimeLabel:
			q.Sort.Key = view.SortTime
		default:
			return view.Query{}, fmt.Errorf("unknown sort key %q: use %q or %q", *sortKey, f.StringLabel, f.TimeLabel)
		}
	}
	if ascending != nil {
		q.Sort.Ascending = *ascending
	}
	if page != nil {
		q.Page = *page
	}
	if pageSize != nil && *pageSize > 0 {
		q.PageSize = *pageSize
	}
	return q, nil
}

func sinceRange(name string) (timeutil.Range, error) {
	switch name {
	case "today":
		return timeutil.Today(), nil
	case "yesterday":
		return timeutil.Yesterday(), nil
	case "week":
		return timeutil.ThisWeek(), nil
	default:
		return timeutil.Range{}, fmt.Errorf("unknown since window %q: use today, yesterday, or week", name)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
