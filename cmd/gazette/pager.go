// ABOUTME: Interactive pager over a prefetched collection
// ABOUTME: Search, sort-cycle, and page navigation without further network calls

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rhajizada/gazette-cli/internal/render"
	"github.com/rhajizada/gazette-cli/internal/view"
)

// browse pages through all interactively. Navigation stays clamped to
// the valid page range; changing the search or toggling the sort resets
// to page 1, matching the list views of the web client.
func browse[T any](all []T, f view.Fields[T], row func(T), q view.Query) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		res := view.Apply(all, f, q)
		q.Page = res.Page

		fmt.Println()
		if res.Filtered == 0 {
			fmt.Println("No matches")
		} else {
			for _, entity := range res.PageItems {
				row(entity)
			}
			fmt.Println()
			fmt.Println(render.PageStrip(res.Page, res.TotalPages, res.Filtered), render.SortIndicator(f, q.Sort))
		}
		fmt.Print("[n]ext [p]rev [g]oto N [s]ort /search [q]uit > ")

		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "q" || input == "quit":
			return nil
		case input == "n":
			if q.Page < res.TotalPages {
				q.Page++
			}
		case input == "p":
			if q.Page > 1 {
				q.Page--
			}
		case input == "s":
			q.Sort = q.Sort.Next()
			q.Page = 1
		case strings.HasPrefix(input, "g"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "g")))
			if err == nil {
				q.Page = n // Apply clamps out-of-range pages
			}
		case strings.HasPrefix(input, "/"):
			q.Search = strings.TrimPrefix(input, "/")
			q.Page = 1
		case input == "":
			// re-render
		default:
			fmt.Printf("unknown command %q\n", input)
		}
	}
}
