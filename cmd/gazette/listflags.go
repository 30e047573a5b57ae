// ABOUTME: Shared list pipeline: flags, chunked prefetch, local view, rendering
// ABOUTME: Every list command funnels through runList with its entity descriptor

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhajizada/gazette-cli/internal/api"
	"github.com/rhajizada/gazette-cli/internal/bulk"
	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/timeutil"
	"github.com/rhajizada/gazette-cli/internal/view"
)

// addListFlags attaches the flags every list view shares.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "s", "", "case-insensitive substring filter")
	cmd.Flags().String("sort", "", "sort key (entity-specific, e.g. title or published)")
	cmd.Flags().Bool("asc", false, "sort ascending instead of descending")
	cmd.Flags().IntP("page", "p", 1, "page to display")
	cmd.Flags().Int("page-size", 0, "entries per page (default from config)")
	cmd.Flags().Int("chunk-size", 0, "prefetch batch size (default from config)")
	cmd.Flags().BoolP("interactive", "i", false, "page through results interactively")
	cmd.Flags().Bool("json", false, "print the full fetched set as JSON")
}

// addDateFlags attaches the smart date views available on item lists.
func addDateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("today", false, "only items published today")
	cmd.Flags().Bool("yesterday", false, "only items published yesterday")
	cmd.Flags().Bool("week", false, "only items published this week")
	cmd.MarkFlagsMutuallyExclusive("today", "yesterday", "week")
}

func dateRange(cmd *cobra.Command) timeutil.Range {
	if ok, _ := cmd.Flags().GetBool("today"); ok {
		return timeutil.Today()
	}
	if ok, _ := cmd.Flags().GetBool("yesterday"); ok {
		return timeutil.Yesterday()
	}
	if ok, _ := cmd.Flags().GetBool("week"); ok {
		return timeutil.ThisWeek()
	}
	return timeutil.Range{}
}

// filterByDate narrows items to the requested publish window.
func filterByDate(items []api.Item, r timeutil.Range) []api.Item {
	if r.Since == nil && r.Until == nil {
		return items
	}
	kept := make([]api.Item, 0, len(items))
	for _, it := range items {
		if r.Contains(it.PublishedParsed) {
			kept = append(kept, it)
		}
	}
	return kept
}

func queryFromFlags[T any](cmd *cobra.Command, f view.Fields[T]) (view.Query, error) {
	search, _ := cmd.Flags().GetString("search")
	sortFlag, _ := cmd.Flags().GetString("sort")
	asc, _ := cmd.Flags().GetBool("asc")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	state := view.DefaultSort()
	switch strings.ToLower(sortFlag) {
	case "":
		// keep default
	case f.StringLabel:
		state.Key = view.SortString
	case f.TimeLabel:
		state.Key = view.SortTime
	default:
		return view.Query{}, fmt.Errorf("unknown sort key %q: use %q or %q", sortFlag, f.StringLabel, f.TimeLabel)
	}
	state.Ascending = asc

	if pageSize <= 0 {
		pageSize = cfg.GetPageSize()
	}

	return view.Query{
		Search:   search,
		Sort:     state,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func chunkSize(cmd *cobra.Command) int {
	chunk, _ := cmd.Flags().GetInt("chunk-size")
	if chunk <= 0 {
		chunk = cfg.GetChunkSize()
	}
	return chunk
}

// runList is the shared list pipeline: prefetch the whole collection in
// chunks, then filter, sort, and paginate locally. withProgress enables
// the progressive loading indicator (the suggested view's behavior).
func runList[T any](cmd *cobra.Command, f view.Fields[T], list bulk.ListFunc[T], row func(T), withProgress bool) error {
	return runListFiltered(cmd, f, list, row, withProgress, nil)
}

// runListFiltered additionally applies a client-side pre-filter to the
// fetched set before the view engine sees it.
func runListFiltered[T any](cmd *cobra.Command, f view.Fields[T], list bulk.ListFunc[T], row func(T), withProgress bool, pre func([]T) []T) error {
	if err := requireClient(); err != nil {
		return err
	}
	q, err := queryFromFlags(cmd, f)
	if err != nil {
		return err
	}

	var onProgress bulk.ProgressFunc
	if withProgress {
		onProgress = func(loaded int, total int64) {
			fmt.Fprint(os.Stderr, render.Progress(loaded, total))
		}
	}

	all, err := bulk.FetchAll(cmd.Context(), list, chunkSize(cmd), onProgress)
	if err != nil {
		return apiFailure(err)
	}
	if withProgress {
		fmt.Fprintln(os.Stderr)
	}

	if pre != nil {
		all = pre(all)
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return browse(all, f, row, q)
	}

	res := view.Apply(all, f, q)
	if res.Filtered == 0 {
		fmt.Println("No matches")
		return nil
	}
	for _, entity := range res.PageItems {
		row(entity)
	}
	fmt.Println()
	fmt.Println(render.PageStrip(res.Page, res.TotalPages, res.Filtered), render.SortIndicator(f, q.Sort))
	return nil
}
