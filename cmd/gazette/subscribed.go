// ABOUTME: subscribed command: the merged timeline of every subscribed feed
// ABOUTME: Defaults to newest-first, the reading-order view

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/view"
)

var subscribedCmd = &cobra.Command{
	Use:     "subscribed",
	Aliases: []string{"timeline"},
	Short:   "List items from subscribed feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := func(ctx context.Context, limit, offset int) (bulk.Page[api.Item], error) {
			resp, err := client.ListSubscribedItems(ctx, limit, offset)
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
	rootCmd.AddCommand(subscribedCmd)
	addListFlags(subscribedCmd)
	addDateFlags(subscribedCmd)
}
