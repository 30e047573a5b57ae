// ABOUTME: MCP resource providers for gazette
// ABOUTME: Exposes read-only views of subscriptions, recent items, and account stats

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/timeutil"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time      `json:"timestamp"`
	Count       int            `json:"count"`
	ResourceURI string         `json:"resource_uri"`
	Filters     map[string]any `json:"filters,omitempty"`
}

func (s *Server) registerResources() {
	s.registerSubscriptionsResource()
	s.registerItemsTodayResource()
	s.registerCollectionsResource()
	s.registerStatsResource()
}

func (s *Server) resourceResult(uri string, data ResourceData) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) registerSubscriptionsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "gazette://subscriptions",
			Name:        "Subscribed Feeds",
			Description: "All feeds the current user is subscribed to, with subscription timestamps and last update times",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			feeds, err := bulk.FetchAll(ctx, func(ctx context.Context, limit, offset int) (bulk.Page[api.Feed], error) {
				resp, err := s.client.ListFeeds(ctx, true, limit, offset)
				if err != nil {
					return bulk.Page[api.Feed]{}, err
				}
				return bulk.Page[api.Feed]{Items: resp.Feeds, TotalCount: resp.TotalCount}, nil
			}, s.chunkSize, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to list subscriptions: %w", err)
			}

			feedOutputs := make([]FeedOutput, 0, len(feeds))
			for _, feed := range feeds {
				feedOutputs = append(feedOutputs, feedOutput(feed))
			}

			return s.resourceResult(request.Params.URI, ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					Count:       len(feedOutputs),
					ResourceURI: "gazette://subscriptions",
					Filters:     map[string]any{"subscribed": true},
				},
				Data: feedOutputs,
				Links: map[string]string{
					"today_items": "gazette://items/today",
					"collections": "gazette://collections",
					"stats":       "gazette://stats",
				},
			})
		},
	)
}

func (s *Server) registerItemsTodayResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "gazette://items/today",
			Name:        "Today's Items",
			Description: "Items from subscribed feeds published today (since midnight local time)",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			items, err := bulk.FetchAll(ctx, func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
				return itemPage(s.client.ListSubscribedItems(ctx, limit, offset))
			}, s.chunkSize, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to list subscribed items: %w", err)
			}

			today := timeutil.Today()
			itemOutputs := make([]ItemOutput, 0, len(items))
			for _, item := range items {
				if !today.Contains(item.PublishedParsed) {
					continue
				}
				itemOutputs = append(itemOutputs, ItemOutput{
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

			return s.resourceResult(request.Params.URI, ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					Count:       len(itemOutputs),
					ResourceURI: "gazette://items/today",
					Filters:     map[string]any{"published_since": *today.Since},
				},
				Data: itemOutputs,
				Links: map[string]string{
					"subscriptions": "gazette://subscriptions",
					"collections":   "gazette://collections",
					"stats":         "gazette://stats",
				},
			})
		},
	)
}

func (s *Server) registerCollectionsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "gazette://collections",
			Name:        "Collections",
			Description: "All of the current user's collections with their last-updated timestamps",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
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

			collOutputs := make([]CollectionOutput, 0, len(colls))
			for _, c := range colls {
				collOutputs = append(collOutputs, CollectionOutput{
					ID:          c.ID,
					Name:        c.Name,
					LastUpdated: c.LastUpdated,
				})
			}

			return s.resourceResult(request.Params.URI, ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					Count:       len(collOutputs),
					ResourceURI: "gazette://collections",
				},
				Data: collOutputs,
				Links: map[string]string{
					"subscriptions": "gazette://subscriptions",
					"today_items":   "gazette://items/today",
					"stats":         "gazette://stats",
				},
			})
		},
	)
}

func (s *Server) registerStatsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         "gazette://stats",
			Name:        "Account Statistics",
			Description: "Overview counts for the current user: total feeds, subscriptions, liked items, and collections",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			stats, err := s.calculateStats(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to calculate stats: %w", err)
			}

			return s.resourceResult(request.Params.URI, ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   time.Now(),
					ResourceURI: "gazette://stats",
				},
				Data: stats,
				Links: map[string]string{
					"subscriptions": "gazette://subscriptions",
					"today_items":   "gazette://items/today",
					"collections":   "gazette://collections",
				},
			})
		},
	)
}

// StatsData represents the statistics summary.
type StatsData struct {
	TotalFeeds      int64 `json:"total_feeds"`
	SubscribedFeeds int64 `json:"subscribed_feeds"`
	LikedItems      int64 `json:"liked_items"`
	Collections     int64 `json:"collections"`
}

// calculateStats derives overview counts from the list envelopes' totals
// without fetching the collections themselves.
func (s *Server) calculateStats(ctx context.Context) (*StatsData, error) {
	allFeeds, err := s.client.ListFeeds(ctx, false, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count feeds: %w", err)
	}
	subscribed, err := s.client.ListFeeds(ctx, true, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	liked, err := s.client.ListLikedItems(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count liked items: %w", err)
	}
	colls, err := s.client.ListCollections(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count collections: %w", err)
	}

	return &StatsData{
		TotalFeeds:      allFeeds.TotalCount,
		SubscribedFeeds: subscribed.TotalCount,
		LikedItems:      liked.TotalCount,
		Collections:     colls.TotalCount,
	}, nil
}
