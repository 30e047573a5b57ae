// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides workflow templates for Gazette reading and curation

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerDailyDigestPrompt()
	s.registerCuratePrompt()
	s.registerDiscoverPrompt()
}

func (s *Server) registerDailyDigestPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "daily-digest",
			Description: "Generate a summary of today's items from subscribed feeds to catch up on the latest content",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleDailyDigest,
	)
}

func (s *Server) handleDailyDigest(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Daily Digest

## Overview
Review and summarize today's items to stay up-to-date with your Gazette subscriptions. This workflow helps you quickly digest the most important content published today across all your subscribed feeds.

## When to Use
- Daily morning routine to catch up on overnight content
- End of day review to see what you missed
- When you want a quick overview without reading every item

## Workflow Steps

### Step 1: Check Account Statistics
Get an overview of the account before diving in.

**Use gazette://stats resource:**
- Review subscribed feed count and liked item totals
- A large gap between total and subscribed feeds means there is content you are not seeing

### Step 2: Scan Today's Items
Review the full list of items published today.

**Use gazette://items/today resource** (or list_items with scope='subscribed' and since='today'):
- Note titles, categories, and source feeds
- Scan for keywords matching current interests: "release", "announcement", "security"
- Identify 5-10 must-read items

### Step 3: Read High-Priority Content
Focus on the must-read items.

**Use get_item tool:**
- Content arrives converted to Markdown for easy reading
- Take notes on important insights
- Like items worth returning to with like_item

### Step 4: Generate Summary
Create a brief digest of key takeaways.

**Summary structure:**
- **Top Stories:** 2-3 most important items with key points
- **Notable Updates:** 3-5 significant but not urgent items
- **Trending Topics:** Themes or patterns across multiple items
- **Action Items:** Follow-ups, things to investigate, or share

### Step 5: File What Matters
Put keepers somewhere you will find them again.

**Use collect_item tool:**
- Add must-keep items to a topical collection
- Create a new collection with create_collection if none fits
- Like borderline items so they surface in the liked scope later

## Tips and Best Practices
- **Time-box it:** Set a limit (15-30 minutes) to avoid rabbit holes
- **Prune aggressively:** If a feed consistently provides low-value content, unsubscribe_feed
- **Use search:** list_items with a search term beats scrolling when you know what you want`

	return &mcp.GetPromptResult{
		Description: "Daily digest workflow for catching up on subscribed feeds",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) registerCuratePrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "curate-collections",
			Description: "Organize liked items into topical collections and prune stale ones",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleCurate,
	)
}

func (s *Server) handleCurate(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Curate Collections

## Overview
Turn an unstructured pile of liked items into organized, topical collections. Run this periodically when the liked list has grown past easy scanning.

## Workflow Steps

### Step 1: Survey the Liked Backlog
**Use list_items with scope='liked':**
- Page through everything liked so far
- Note recurring themes: languages, projects, long-form reads, recipes

### Step 2: Review Existing Collections
**Use gazette://collections resource** (or list_collections):
- Which themes already have a home?
- Which collections have not been updated in months?

### Step 3: Create Missing Collections
**Use create_collection tool:**
- One collection per recurring theme from step 1
- Prefer short, specific names ("Rust async", not "Programming stuff")

### Step 4: File Items
For each liked item that fits a theme:
- **collect_item** to add it to the right collection
- An item can live in several collections; use get_item to see where it already is
- **unlike_item** once it is filed if you use likes as an inbox

### Step 5: Prune
- **uncollect_item** for entries that no longer belong
- **delete_collection** for collections that never grew past one or two items

## Tips
- Small, focused collections beat one giant "Saved" list
- list_items with scope='collection' and a search term finds misfiled entries fast`

	return &mcp.GetPromptResult{
		Description: "Collection curation workflow for organizing liked items",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) registerDiscoverPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "discover-feeds",
			Description: "Find and subscribe to new feeds based on suggestions and categories",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleDiscover,
	)
}

func (s *Server) handleDiscover(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Discover Feeds

## Overview
Expand your subscriptions using the server's recommendations and the category index. Use this when the timeline feels stale.

## Workflow Steps

### Step 1: Sample the Suggestions
**Use list_items with scope='suggested':**
- These are items from feeds you do not follow yet
- Note which sources keep producing items you actually open

### Step 2: Explore by Category
**Use list_items with scope='categories':**
- Pick category names from items you liked recently
- Read a few entries from each with get_item to judge quality

### Step 3: Trace Items Back to Feeds
Every item carries a feed_id.
- **Use list_feeds** with a search on the source's name to inspect the feed
- Check its description and update cadence before committing

### Step 4: Subscribe or Import
- **subscribe_feed** for feeds already on the server
- **add_feed** with a URL for sources not yet known to the server

### Step 5: Trial Period
- After a week, review the new feed with list_items scope='feed'
- Keep what earns its place; **unsubscribe_feed** for the rest

## Tips
- Subscribe to a handful at a time so new sources get a fair reading
- The suggested scope improves as you like more items`

	return &mcp.GetPromptResult{
		Description: "Feed discovery workflow using suggestions and categories",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
