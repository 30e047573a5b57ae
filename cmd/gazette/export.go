// ABOUTME: OPML export and import commands for subscription portability
// ABOUTME: export writes subscribed feeds to stdout, import submits a file's feeds

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/opml"
	"github.com/rhajizada/gazette-cli/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export subscribed feeds as OPML to stdout",
	Long:  "Export the subscribed feed list in OPML format to standard output, grouped by category.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}

		feeds, err := bulk.FetchAll(cmd.Context(), func(ctx context.Context, limit, offset int) (bulk.Page[api.Feed], error) {
			resp, err := client.ListFeeds(ctx, true, limit, offset)
			if err != nil {
				return bulk.Page[api.Feed]{}, err
			}
			return bulk.Page[api.Feed]{Items: resp.Feeds, TotalCount: resp.TotalCount}, nil
		}, chunkSize(cmd), nil)
		if err != nil {
			return apiFailure(err)
		}

		doc := opml.FromFeeds("Gazette subscriptions", feeds)
		return doc.Write(os.Stdout)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.opml>",
	Short: "Import feeds from an OPML file",
	Long: `Import every feed from an OPML file into Gazette.

Each feed URL is submitted to the server, which fetches and parses it.
Feeds the server rejects are reported and skipped; the rest are imported
and subscribed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClient(); err != nil {
			return err
		}

		doc, err := opml.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read OPML: %w", err)
		}
		if len(doc.Entries) == 0 {
			return fmt.Errorf("no feeds found in %s", args[0])
		}

		var failed int
		for _, entry := range doc.Entries {
			feed, err := client.CreateFeed(cmd.Context(), entry.URL)
			if err != nil {
				if api.IsUnauthorized(err) {
					return apiFailure(err)
				}
				render.Failure("%s: %v", entry.URL, err)
				failed++
				continue
			}
			render.Success("imported %s (%s)", feed.Title, render.ShortID(feed.ID))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d feeds failed to import", failed, len(doc.Entries))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().Int("chunk-size", 0, "prefetch batch size (default from config)")
}
