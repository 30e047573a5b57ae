// ABOUTME: Tests for CLI commands
// ABOUTME: Tests command structure, flags, and shared list helpers

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/config"
	"github.com/rhajizada/gazette-cli/internal/timeutil"
	"github.com/rhajizada/gazette-cli/internal/view"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "gazette" {
		t.Errorf("expected Use to be 'gazette', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected root command to have a short description")
	}
	// main prints returned errors itself; cobra must not print them a
	// second time.
	if !rootCmd.SilenceErrors {
		t.Error("expected SilenceErrors on the root command")
	}
}

func TestRootPersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config flag to exist")
	}
	if rootCmd.PersistentFlags().Lookup("server") == nil {
		t.Error("expected --server flag to exist")
	}
}

func TestFeedsCommand(t *testing.T) {
	if feedsCmd.Use != "feeds" {
		t.Errorf("expected Use to be 'feeds', got %q", feedsCmd.Use)
	}
	if len(feedsCmd.Aliases) == 0 {
		t.Error("expected feeds command to have aliases")
	}
	if feedsCmd.Flags().Lookup("subscribed") == nil {
		t.Error("expected --subscribed flag to exist")
	}
}

func TestFeedsAddCommand(t *testing.T) {
	if feedsAddCmd.Use != "add <url>" {
		t.Errorf("expected Use to be 'add <url>', got %q", feedsAddCmd.Use)
	}
	if feedsAddCmd.Flags().Lookup("yes") == nil {
		t.Error("expected --yes flag to exist")
	}
	if feedsAddCmd.Flags().Lookup("no-preview") == nil {
		t.Error("expected --no-preview flag to exist")
	}
}

func TestItemsCommandListsLiked(t *testing.T) {
	if itemsCmd.RunE == nil {
		t.Fatal("expected bare items command to run the liked list")
	}
	if itemsLikedCmd.RunE == nil {
		t.Fatal("expected items liked to have a run function")
	}
}

func TestListFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{feedsCmd, itemsCmd, itemsLikedCmd, collectionsCmd, categoriesCmd, subscribedCmd, suggestedCmd} {
		for _, flag := range []string{"search", "sort", "asc", "page", "page-size", "chunk-size", "interactive", "json"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("expected %s command to have --%s flag", cmd.Name(), flag)
			}
		}
	}
}

func TestDateFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{feedsItemsCmd, itemsCmd, itemsLikedCmd, collectionsShowCmd, categoriesItemsCmd, subscribedCmd, suggestedCmd} {
		for _, flag := range []string{"today", "yesterday", "week"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("expected %s command to have --%s flag", cmd.Name(), flag)
			}
		}
	}
}

func TestCommandRegistration(t *testing.T) {
	commandNames := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		commandNames[cmd.Name()] = true
	}

	expectedCommands := []string{
		"feeds",
		"items",
		"collections",
		"categories",
		"subscribed",
		"suggested",
		"login",
		"logout",
		"whoami",
		"open",
		"setup",
		"mcp",
		"export",
		"import",
		"version",
	}

	for _, expected := range expectedCommands {
		if !commandNames[expected] {
			t.Errorf("expected %q command to be registered", expected)
		}
	}
}

func TestSubcommandRegistration(t *testing.T) {
	tests := []struct {
		parent   *cobra.Command
		expected []string
	}{
		{feedsCmd, []string{"show", "add", "rm", "items", "subscribe", "unsubscribe"}},
		{itemsCmd, []string{"show", "liked", "like", "unlike", "collections"}},
		{collectionsCmd, []string{"create", "rm", "show", "add", "remove"}},
		{categoriesCmd, []string{"items"}},
	}

	for _, tt := range tests {
		names := make(map[string]bool)
		for _, cmd := range tt.parent.Commands() {
			names[cmd.Name()] = true
		}
		for _, expected := range tt.expected {
			if !names[expected] {
				t.Errorf("expected %s to have %q subcommand", tt.parent.Name(), expected)
			}
		}
	}
}

func TestEntityID(t *testing.T) {
	if _, err := entityID("b9e5cbc2-6d3f-4a38-a6d6-64a437e1d363"); err != nil {
		t.Errorf("expected valid UUID to be accepted: %v", err)
	}
	for _, bad := range []string{"", "abc", "b9e5cbc2", "not-a-uuid-at-all-here"} {
		if _, err := entityID(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestQueryFromFlags(t *testing.T) {
	cfg = &config.Config{PageSize: 15}

	cmd := &cobra.Command{}
	addListFlags(cmd)
	if err := cmd.Flags().Set("search", "golang"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("sort", "title"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("asc", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("page", "2"); err != nil {
		t.Fatal(err)
	}

	q, err := queryFromFlags(cmd, view.ItemFields())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Search != "golang" {
		t.Errorf("expected search carried through, got %q", q.Search)
	}
	if q.Sort.Key != view.SortString || !q.Sort.Ascending {
		t.Errorf("expected ascending title sort, got %+v", q.Sort)
	}
	if q.Page != 2 {
		t.Errorf("expected page 2, got %d", q.Page)
	}
	if q.PageSize != 15 {
		t.Errorf("expected page size from config, got %d", q.PageSize)
	}
}

func TestQueryFromFlags_UnknownSort(t *testing.T) {
	cfg = &config.Config{}

	cmd := &cobra.Command{}
	addListFlags(cmd)
	if err := cmd.Flags().Set("sort", "popularity"); err != nil {
		t.Fatal(err)
	}

	if _, err := queryFromFlags(cmd, view.ItemFields()); err == nil {
		t.Error("expected error for unknown sort key")
	}
}

func TestDateRange(t *testing.T) {
	cmd := &cobra.Command{}
	addDateFlags(cmd)

	if r := dateRange(cmd); r.Since != nil || r.Until != nil {
		t.Error("expected unbounded range without date flags")
	}

	if err := cmd.Flags().Set("today", "true"); err != nil {
		t.Fatal(err)
	}
	r := dateRange(cmd)
	if r.Since == nil {
		t.Fatal("expected bounded range with --today")
	}
	now := time.Now()
	if !r.Contains(&now) {
		t.Error("expected today's range to contain the current time")
	}
}

func TestFilterByDate(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, -2, 0)
	items := []api.Item{
		{ID: "fresh", PublishedParsed: &now},
		{ID: "stale", PublishedParsed: &old},
		{ID: "undated"},
	}

	kept := filterByDate(items, timeutil.Today())
	if len(kept) != 1 || kept[0].ID != "fresh" {
		t.Errorf("expected only the fresh item, got %v", kept)
	}

	all := filterByDate(items, timeutil.Range{})
	if len(all) != 3 {
		t.Errorf("expected unbounded range to keep everything, got %d", len(all))
	}
}
