// ABOUTME: Date ranges for the smart item views: today, yesterday, this week
// ABOUTME: Items are filtered client-side by publish time against a Range

package timeutil

import "time"

// Range is a half-open time window [Since, Until). A nil bound is
// unbounded on that side.
type Range struct {
	Since *time.Time
	Until *time.Time
}

// Contains reports whether t falls inside the range. A nil t (item
// without a publish time) never matches a bounded range.
func (r Range) Contains(t *time.Time) bool {
	if r.Since == nil && r.Until == nil {
		return true
	}
	if t == nil {
		return false
	}
	if r.Since != nil && t.Before(*r.Since) {
		return false
	}
	if r.Until != nil && !t.Before(*r.Until) {
		return false
	}
	return true
}

// Today covers the current local day.
func Today() Range {
	start := startOfToday()
	return Range{Since: &start}
}

// Yesterday covers the previous local day.
func Yesterday() Range {
	end := startOfToday()
	start := end.AddDate(0, 0, -1)
	return Range{Since: &start, Until: &end}
}

// ThisWeek covers everything since the most recent Sunday midnight.
func ThisWeek() Range {
	today := startOfToday()
	start := today.AddDate(0, 0, -int(today.Weekday()))
	return Range{Since: &start}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
