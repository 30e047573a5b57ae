// ABOUTME: Tests for the chunked prefetcher against scripted fake backends
// ABOUTME: Covers completeness, ordering, early stop, truncation, and cancellation

package bulk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rhajizada/gazette-cli/internal/bulk"
)

// fakeBackend serves n sequential ints through a paged list endpoint
// and records every call's window.
type fakeBackend struct {
	n     int
	total int64 // reported total_count, may disagree with n
	calls [][2]int
}

func (f *fakeBackend) list(_ context.Context, limit, offset int) (bulk.Page[int], error) {
	f.calls = append(f.calls, [2]int{limit, offset})
	items := []int{}
	for i := offset; i < offset+limit && i < f.n; i++ {
		items = append(items, i)
	}
	return bulk.Page[int]{Items: items, TotalCount: f.total}, nil
}

func TestFetchAll_Complete237By100(t *testing.T) {
	backend := &fakeBackend{n: 237, total: 237}

	got, err := bulk.FetchAll(context.Background(), backend.list, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 237 {
		t.Fatalf("expected 237 items, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("server order violated at index %d: got %d", i, v)
		}
	}

	wantCalls := [][2]int{{100, 0}, {100, 100}, {100, 200}}
	if len(backend.calls) != len(wantCalls) {
		t.Fatalf("expected %d calls, got %d (%v)", len(wantCalls), len(backend.calls), backend.calls)
	}
	for i, call := range backend.calls {
		if call != wantCalls[i] {
			t.Errorf("call %d: expected %v, got %v", i, wantCalls[i], call)
		}
	}
}

func TestFetchAll_ZeroTotal(t *testing.T) {
	backend := &fakeBackend{n: 0, total: 0}

	got, err := bulk.FetchAll(context.Background(), backend.list, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d items", len(got))
	}
	if len(backend.calls) != 1 {
		t.Errorf("expected exactly one call, got %d", len(backend.calls))
	}
}

func TestFetchAll_ShortPageStopsEarly(t *testing.T) {
	// Backend claims 500 but only has 150: the short second page ends
	// the loop without a third call.
	backend := &fakeBackend{n: 150, total: 500}

	got, err := bulk.FetchAll(context.Background(), backend.list, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 150 {
		t.Errorf("expected 150 items, got %d", len(got))
	}
	if len(backend.calls) != 2 {
		t.Errorf("expected 2 calls, got %d", len(backend.calls))
	}
}

func TestFetchAll_TruncatesToFirstTotal(t *testing.T) {
	// Backend has grown past the first reported total: the first total
	// stays authoritative.
	backend := &fakeBackend{n: 250, total: 205}

	got, err := bulk.FetchAll(context.Background(), backend.list, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 205 {
		t.Errorf("expected truncation to 205 items, got %d", len(got))
	}
}

func TestFetchAll_ErrorAborts(t *testing.T) {
	boom := errors.New("backend down")
	calls := 0
	list := func(_ context.Context, limit, offset int) (bulk.Page[int], error) {
		calls++
		if offset >= 100 {
			return bulk.Page[int]{}, boom
		}
		items := make([]int, limit)
		return bulk.Page[int]{Items: items, TotalCount: 300}, nil
	}

	_, err := bulk.FetchAll(context.Background(), list, 100, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected fetch to stop at the failing call, got %d calls", calls)
	}
}

func TestFetchAll_CancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	list := func(ctx context.Context, limit, offset int) (bulk.Page[int], error) {
		calls++
		if offset == 0 {
			// Simulate the view being torn down mid-load.
			cancel()
		}
		items := make([]int, limit)
		return bulk.Page[int]{Items: items, TotalCount: 1000}, nil
	}

	_, err := bulk.FetchAll(ctx, list, 100, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no further chunk requests after cancellation, got %d calls", calls)
	}
}

func TestFetchAll_ProgressReports(t *testing.T) {
	backend := &fakeBackend{n: 237, total: 237}

	var progress [][2]int64
	onProgress := func(loaded int, total int64) {
		progress = append(progress, [2]int64{int64(loaded), total})
	}

	if _, err := bulk.FetchAll(context.Background(), backend.list, 100, onProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][2]int64{{100, 237}, {200, 237}, {237, 237}}
	if len(progress) != len(want) {
		t.Fatalf("expected %d progress reports, got %v", len(want), progress)
	}
	for i, p := range progress {
		if p != want[i] {
			t.Errorf("report %d: expected %v, got %v", i, want[i], p)
		}
	}
}

func TestCollectPages_AdaptsEnvelope(t *testing.T) {
	type envelope struct {
		Items      []string
		TotalCount int64
	}

	call := func(_ context.Context, limit, offset int) (envelope, error) {
		if offset > 0 {
			return envelope{}, fmt.Errorf("unexpected offset %d", offset)
		}
		return envelope{Items: []string{"a", "b"}, TotalCount: 2}, nil
	}

	list := bulk.CollectPages(call, func(e envelope) ([]string, int64) {
		return e.Items, e.TotalCount
	})

	got, err := bulk.FetchAll(context.Background(), list, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected result: %v", got)
	}
}
