// ABOUTME: Item commands: show rendered content, like toggles, liked list
// ABOUTME: show renders HTML entries to markdown and pipes them through glamour

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/toggle"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var itemsCmd = &cobra.Command{
	Use:     "items",
	Aliases: []string{"i"},
	Short:   "Read and manage items",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare "items" shows the liked list, same as "items liked".
		return runLikedList(cmd)
	},
}

var itemsShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Render an item's content in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}
		itemID, err := entityID(args[0])
		if err != nil {
			return err
		}

		item, err := client.GetItem(cmd.Context(), itemID)
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("item %s not found", args[0])
			}
			return apiFailure(err)
		}

		render.Header(item.Title)
		if item.PublishedParsed != nil {
			fmt.Println(item.PublishedParsed.Format("02 Jan 06 15:04"))
		}
		for _, author := range item.Authors {
			fmt.Printf("by %s\n", author.Name)
		}
		fmt.Println()

		body := item.Content
		if body == "" {
			body = item.Description
		}
		if body != "" {
			fmt.Println(render.Content(body))
		}

		if item.Link != "" {
			fmt.Println(render.Link(item.Link))
		}
		if item.Liked {
			fmt.Println("♥ liked")
		}

		containing, err := itemCollections(cmd.Context(), itemID)
		if err != nil {
			return apiFailure(err)
		}
		if len(containing) > 0 {
			names := make([]string, len(containing))
			for i, c := range containing {
				names[i] = c.Name
			}
			fmt.Printf("in collections: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

var itemsLikedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List liked items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLikedList(cmd)
	},
}

func runLikedList(cmd *cobra.Command) error {
	list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
		resp, err := client.ListLikedItems(ctx, limit, offset)
		if err != nil {
			return bulk.Page[api.Item]{}, err
		}
		return bulk.Page[api.Item]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
	}

	r := dateRange(cmd)
	return runListFiltered(cmd, view.ItemFields(), list, render.ItemRow, false, func(items []api.Item) []api.Item {
		return filterByDate(items, r)
	})
}

var itemsLikeCmd = &cobra.Command{
	Use:   "like <item-id>",
	Short: "Like an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleLike(cmd, args[0], true)
	},
}

var itemsUnlikeCmd = &cobra.Command{
	Use:   "unlike <item-id>",
	Short: "Remove a like from an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleLike(cmd, args[0], false)
	},
}

var itemsCollectionsCmd = &cobra.Command{
	Use:   "collections <item-id>",
	Short: "List the collections containing an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := entityID(args[0])
		if err != nil {
			return err
		}

		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Collection], error) {
			resp, err := client.ListItemCollections(ctx, itemID, limit, offset)
			if err != nil {
				return bulk.Page[api.Collection]{}, err
			}
			return bulk.Page[api.Collection]{Items: resp.Collections, TotalCount: resp.TotalCount}, nil
		}

		return runList(cmd, view.CollectionFields(), list, render.CollectionRow, false)
	},
}

// toggleLike reconciles the server-reported like flag with the requested
// direction through a guarded toggle.
func toggleLike(cmd *cobra.Command, rawID string, want bool) error {
	if err := requireClient(); err != nil {
		return err
	}
	itemID, err := entityID(rawID)
	if err != nil {
		return err
	}

	item, err := client.GetItem(cmd.Context(), itemID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("item %s not found", rawID)
		}
		return apiFailure(err)
	}
	if item.Liked == want {
		if want {
			fmt.Printf("already liked %s\n", item.Title)
		} else {
			fmt.Printf("not liked: %s\n", item.Title)
		}
		return nil
	}

	sw := toggle.NewSwitch(item.Liked)
	err = sw.Toggle(cmd.Context(),
		func(ctx context.Context) error {
			_, err := client.LikeItem(ctx, itemID)
			return err
		},
		func(ctx context.Context) error {
			return client.UnlikeItem(ctx, itemID)
		},
	)
	if err != nil {
		return apiFailure(err)
	}

	if sw.Enabled() {
		render.Success("liked %s", item.Title)
	} else {
		render.Success("unliked %s", item.Title)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsShowCmd, itemsLikedCmd, itemsLikeCmd, itemsUnlikeCmd, itemsCollectionsCmd)

	addListFlags(itemsCmd)
	addDateFlags(itemsCmd)
	addListFlags(itemsLikedCmd)
	addDateFlags(itemsLikedCmd)
	addListFlags(itemsCollectionsCmd)
}
