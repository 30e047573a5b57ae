// ABOUTME: Tests for date range construction and containment
// ABOUTME: Uses offsets from now so the tests hold on any day

package timeutil_test

import (
	"testing"
	"time"

	"github.com/rhajizada/gazette-cli/internal/timeutil"
)

func ptr(t time.Time) *time.Time { return &t }

func TestUnboundedRangeMatchesEverything(t *testing.T) {
	var r timeutil.Range
	if !r.Contains(nil) {
		t.Error("unbounded range must match items without a publish time")
	}
	if !r.Contains(ptr(time.Unix(0, 0))) {
		t.Error("unbounded range must match the epoch")
	}
}

func TestBoundedRangeRejectsNil(t *testing.T) {
	r := timeutil.Today()
	if r.Contains(nil) {
		t.Error("bounded range must not match items without a publish time")
	}
}

func TestToday(t *testing.T) {
	r := timeutil.Today()
	if !r.Contains(ptr(time.Now())) {
		t.Error("now must be inside today")
	}
	if r.Contains(ptr(time.Now().AddDate(0, 0, -2))) {
		t.Error("two days ago must be outside today")
	}
}

func TestYesterday(t *testing.T) {
	r := timeutil.Yesterday()
	if !r.Contains(ptr(time.Now().AddDate(0, 0, -1))) {
		t.Error("24h ago must be inside yesterday")
	}
	if r.Contains(ptr(time.Now())) {
		t.Error("now must be outside yesterday")
	}
	if r.Contains(ptr(time.Now().AddDate(0, 0, -3))) {
		t.Error("three days ago must be outside yesterday")
	}
}

func TestThisWeek(t *testing.T) {
	r := timeutil.ThisWeek()
	if !r.Contains(ptr(time.Now())) {
		t.Error("now must be inside this week")
	}
	if r.Contains(ptr(time.Now().AddDate(0, 0, -8))) {
		t.Error("eight days ago must be outside this week")
	}
}
