// ABOUTME: Windowed page-number strip for list views
// ABOUTME: First/last anchors, a ±2 window around the current page, collapsed gaps

package view

// PageRef is one element of the page-number strip: either a concrete
// page number or an ellipsis standing in for a skipped range.
type PageRef struct {
	N        int
	Ellipsis bool
}

// Window builds the page strip for the given current page. The first
// and last page are always present, up to five pages center on the
// current one, and each skipped range collapses into one ellipsis. A
// gap of exactly one page shows the page number itself; an ellipsis
// never hides a single page.
func Window(current, total int) []PageRef {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	refs := []PageRef{{N: 1}}

	start := current - 2
	if start < 2 {
		start = 2
	}
	end := current + 2
	if end > total-1 {
		end = total - 1
	}

	switch {
	case start == 3:
		refs = append(refs, PageRef{N: 2})
	case start > 3:
		refs = append(refs, PageRef{Ellipsis: true})
	}

	for p := start; p <= end; p++ {
		refs = append(refs, PageRef{N: p})
	}

	switch {
	case end == total-2:
		refs = append(refs, PageRef{N: total - 1})
	case end < total-2:
		refs = append(refs, PageRef{Ellipsis: true})
	}

	if total > 1 {
		refs = append(refs, PageRef{N: total})
	}
	return refs
}
