// ABOUTME: Feed commands: list, show, add with preview, remove, subscribe toggles
// ABOUTME: Lists prefetch every feed then filter/sort/paginate locally

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/preview"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/toggle"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var feedsCmd = &cobra.Command{
	Use:     "feeds",
	Aliases: []string{"f"},
	Short:   "Browse and manage feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		subscribedOnly, _ := cmd.Flags().GetBool("subscribed")

		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Feed], error) {
			resp, err := client.ListFeeds(ctx, subscribedOnly, limit, offset)
			if err != nil {
				return bulk.Page[api.Feed]{}, err
			}
			return bulk.Page[api.Feed]{Items: resp.Feeds, TotalCount: resp.TotalCount}, nil
		}

		return runList(cmd, view.FeedFields(), list, render.FeedRow, false)
	},
}

var feedsShowCmd = &cobra.Command{
	Use:   "show <feed-id>",
	Short: "Show a feed's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}
		feedID, err := entityID(args[0])
		if err != nil {
			return err
		}

		feed, err := client.GetFeed(cmd.Context(), feedID)
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("feed %s not found", args[0])
			}
			return apiFailure(err)
		}

		render.Header(feed.Title)
		if feed.Description != "" {
			fmt.Println(feed.Description)
		}
		if feed.Link != "" {
			fmt.Println(render.Link(feed.Link))
		}
		if feed.Language != "" {
			fmt.Printf("language: %s\n", feed.Language)
		}
		if len(feed.Categories) > 0 {
			fmt.Printf("categories: %s\n", strings.Join(feed.Categories, ", "))
		}
		for _, author := range feed.Authors {
			if author.Email != "" {
				fmt.Printf("author: %s <%s>\n", author.Name, author.Email)
			} else {
				fmt.Printf("author: %s\n", author.Name)
			}
		}
		if feed.Subscribed {
			when := ""
			if feed.SubscribedAt != nil {
				when = " since " + feed.SubscribedAt.Format("02 Jan 06")
			}
			fmt.Printf("subscribed%s\n", when)
		}
		return nil
	},
}

var feedsAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Import a feed by URL",
	Long: `Import a feed into Gazette and subscribe to it.

The URL is previewed locally first: if it points at an HTML page, the
advertised feed link is discovered and shown for confirmation before
anything is sent to the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}
		skipConfirm, _ := cmd.Flags().GetBool("yes")
		skipPreview, _ := cmd.Flags().GetBool("no-preview")

		feedURL := args[0]
		if !skipPreview {
			p, err := preview.Load(cmd.Context(), feedURL)
			if err != nil {
				return fmt.Errorf("failed to preview feed: %w", err)
			}
			feedURL = p.FeedURL

			render.Header(p.Title)
			if p.Description != "" {
				fmt.Println(p.Description)
			}
			fmt.Printf("%s (%d entries)\n", render.Link(p.FeedURL), p.ItemCount)
			for _, title := range p.Recent {
				fmt.Printf("  - %s\n", title)
			}

			if !skipConfirm {
				fmt.Print("Import this feed? [y/N] ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Println("aborted")
					return nil
				}
			}
		}

		feed, err := client.CreateFeed(cmd.Context(), feedURL)
		if err != nil {
			return apiFailure(err)
		}
		render.Success("imported %s (%s)", feed.Title, render.ShortID(feed.ID))
		return nil
	},
}

var feedsRmCmd = &cobra.Command{
	Use:   "rm <feed-id>",
	Short: "Delete a feed from the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}
		feedID, err := entityID(args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteFeed(cmd.Context(), feedID); err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("feed %s not found", args[0])
			}
			return apiFailure(err)
		}
		render.Success("deleted feed %s", args[0])
		return nil
	},
}

var feedsItemsCmd = &cobra.Command{
	Use:   "items <feed-id>",
	Short: "List a feed's items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedID, err := entityID(args[0])
		if err != nil {
			return err
		}

		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			resp, err := client.ListFeedItems(ctx, feedID, limit, offset)
			if err != nil {
				return bulk.Page[api.Item]{}, err
			}
			return bulk.Page[api.Item]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
		}

		r := dateRange(cmd)
		return runListFiltered(cmd, view.ItemFields(), list, render.ItemRow, false, func(items []api.Item) []api.Item {
			return filterByDate(items, r)
		})
	},
}

var feedsSubscribeCmd = &cobra.Command{
	Use:   "subscribe <feed-id>",
	Short: "Subscribe to a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSubscription(cmd, args[0], true)
	},
}

var feedsUnsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <feed-id>",
	Short: "Unsubscribe from a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSubscription(cmd, args[0], false)
	},
}

// toggleSubscription reconciles the server-reported subscription flag
// with the requested direction through a guarded toggle. The local flag
// only flips once the server confirms.
func toggleSubscription(cmd *cobra.Command, rawID string, want bool) error {
	if err := requireClient(); err != nil {
		return err
	}
	feedID, err := entityID(rawID)
	if err != nil {
		return err
	}

	feed, err := client.GetFeed(cmd.Context(), feedID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("feed %s not found", rawID)
		}
		return apiFailure(err)
	}
	if feed.Subscribed == want {
		if want {
			fmt.Printf("already subscribed to %s\n", feed.Title)
		} else {
			fmt.Printf("not subscribed to %s\n", feed.Title)
		}
		return nil
	}

	sw := toggle.NewSwitch(feed.Subscribed)
	err = sw.Toggle(cmd.Context(),
		func(ctx context.Context) error {
			_, err := client.Subscribe(ctx, feedID)
			return err
		},
		func(ctx context.Context) error {
			return client.Unsubscribe(ctx, feedID)
		},
	)
	if err != nil {
		return apiFailure(err)
	}

	if sw.Enabled() {
		render.Success("subscribed to %s", feed.Title)
	} else {
		render.Success("unsubscribed from %s", feed.Title)
	}
	return nil
}

// entityID validates that a command argument is a server-issued UUID
// before any request is built from it.
func entityID(raw string) (string, error) {
	if err := uuid.Validate(raw); err != nil {
		return "", fmt.Errorf("invalid id %q: expected a UUID", raw)
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(feedsCmd)
	feedsCmd.AddCommand(feedsShowCmd, feedsAddCmd, feedsRmCmd, feedsItemsCmd, feedsSubscribeCmd, feedsUnsubscribeCmd)

	addListFlags(feedsCmd)
	feedsCmd.Flags().Bool("subscribed", false, "only subscribed feeds")

	addListFlags(feedsItemsCmd)
	addDateFlags(feedsItemsCmd)

	feedsAddCmd.Flags().BoolP("yes", "y", false, "skip the import confirmation")
	feedsAddCmd.Flags().Bool("no-preview", false, "submit the URL without previewing it")
}
