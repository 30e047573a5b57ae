// ABOUTME: Category commands: list labels, list items across selected categories
// ABOUTME: Category item queries repeat the name parameter per selected label

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "Browse item categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := func(ctx context.Context, limit, offset int) (bulk.Page[string], error) {
			resp, err := client.ListCategories(ctx, limit, offset)
			if err != nil {
				return bulk.Page[string]{}, err
			}
			return bulk.Page[string]{Items: resp.Categories, TotalCount: resp.TotalCount}, nil
		}

		return runList(cmd, view.CategoryFields(), list, func(name string) {
			fmt.Println(name)
		}, false)
	},
}

var categoriesItemsCmd = &cobra.Command{
	Use:   "items <name>...",
	Short: "List items tagged with any of the given categories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			resp, err := client.ListCategoryItems(ctx, args, limit, offset)
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

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesItemsCmd)

	addListFlags(categoriesCmd)
	addListFlags(categoriesItemsCmd)
	addDateFlags(categoriesItemsCmd)
}
