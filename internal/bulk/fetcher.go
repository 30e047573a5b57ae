// ABOUTME: Chunked full-collection prefetch over a paged list endpoint
// ABOUTME: Sequential offsets, authoritative first total, early stop on short pages

package bulk

import (
	"context"
	"fmt"
)

// DefaultChunkSize is the page size used for prefetching unless a
// caller overrides it.
const DefaultChunkSize = 100

// Page is one response from a paged list endpoint.
type Page[T any] struct {
	Items      []T
	TotalCount int64
}

// ListFunc invokes a paged list endpoint with the given window.
type ListFunc[T any] func(ctx context.Context, limit, offset int) (Page[T], error)

// ProgressFunc observes accumulation after every chunk. loaded is the
// number of items fetched so far, total the authoritative target.
type ProgressFunc func(loaded int, total int64)

// FetchAll retrieves an entire paged collection by calling list with
// offsets 0, chunk, 2*chunk, ... strictly in order, each call awaited
// before the next.
//
// The first response's TotalCount is the authoritative target: if later
// pages over-deliver (the collection grew mid-fetch), the result is
// truncated to it. A page with fewer items than requested ends the loop
// even when the accumulated count is still short of the target, guarding
// against a total that overcounts. A nil or zero TotalCount yields an
// empty result after a single call.
//
// Errors abort the fetch and propagate; callers must discard any
// partial state. Cancellation is checked before every request and the
// result of an in-flight request is discarded once ctx is done.
func FetchAll[T any](ctx context.Context, list ListFunc[T], chunk int, onProgress ProgressFunc) ([]T, error) {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	first, err := list(ctx, chunk, 0)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	total := first.TotalCount
	if total <= 0 {
		if onProgress != nil {
			onProgress(0, 0)
		}
		return []T{}, nil
	}

	acc := make([]T, 0, total)
	acc = append(acc, first.Items...)
	if onProgress != nil {
		onProgress(reported(len(acc), total), total)
	}

	// A page shorter than requested means the server has no more to
	// give, even when the accumulated count is still below total.
	short := len(first.Items) < chunk

	for !short && int64(len(acc)) < total {
		page, err := list(ctx, chunk, len(acc))
		if err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(page.Items) == 0 {
			break
		}

		acc = append(acc, page.Items...)
		if onProgress != nil {
			onProgress(reported(len(acc), total), total)
		}
		short = len(page.Items) < chunk
	}

	// The first total is authoritative even if the collection grew.
	if int64(len(acc)) > total {
		acc = acc[:total]
	}
	return acc, nil
}

func reported(loaded int, total int64) int {
	if int64(loaded) > total {
		return int(total)
	}
	return loaded
}

// CollectPages adapts an envelope-returning API method into a ListFunc.
// extract pulls the item slice and total out of the envelope.
func CollectPages[E, T any](call func(ctx context.Context, limit, offset int) (E, error), extract func(E) ([]T, int64)) ListFunc[T] {
	return func(ctx context.Context, limit, offset int) (Page[T], error) {
		envelope, err := call(ctx, limit, offset)
		if err != nil {
			return Page[T]{}, fmt.Errorf("list call at offset %d: %w", offset, err)
		}
		items, total := extract(envelope)
		return Page[T]{Items: items, TotalCount: total}, nil
	}
}
