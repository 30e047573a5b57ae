// ABOUTME: suggested command: recommended items with a progressive loading line
// ABOUTME: The suggestion backend is slow, so chunk progress is shown on stderr

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var suggestedCmd = &cobra.Command{
	Use:   "suggested",
	Short: "List items recommended for you",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			resp, err := client.ListSuggestedItems(ctx, limit, offset)
			if err != nil {
				return bulk.Page[api.Item]{}, err
			}
			return bulk.Page[api.Item]{Items: resp.Items, TotalCount: resp.TotalCount}, nil
		}

		r := dateRange(cmd)
		return runListFiltered(cmd, view.ItemFields(), list, render.ItemRow, true, func(items []api.Item) []api.Item {
			return filterByDate(items, r)
		})
	},
}

func init() {
	rootCmd.AddCommand(suggestedCmd)
	addListFlags(suggestedCmd)
	addDateFlags(suggestedCmd)
}
