package scheduling

import (
	"time"
)

// Rule is a compiled capacity ceiling: at most MaxCapacity concurrent
// appointments, across all doctors, inside the time-of-day range
// [StartMinute, EndMinute). Day nil applies to every day of the week.
type Rule struct {
	ID          int
	StartMinute int
	EndMinute   int
	Day         *time.Weekday
	MaxCapacity int
}

// matches reports whether the rule covers the bucket starting at minute m
// on the given weekday.
func (r Rule) matches(m int, day time.Weekday) bool {
	if r.Day != nil && *r.Day != day {
		return false
	}
	return r.StartMinute <= m && m < r.EndMinute
}

// BucketStarts returns the start of every capacity-unit bucket the window
// [start, end) touches, beginning at the bucket boundary at or before start.
// A 10:15-10:45 window with 30-minute buckets touches 10:00 and 10:30.
func BucketStarts(start, end time.Time, unit time.Duration) []time.Time {
	day := midnight(start)
	unitMin := int(unit / time.Minute)
	floored := (MinuteOfDay(start) / unitMin) * unitMin

	var buckets []time.Time
	for cur := day.Add(time.Duration(floored) * time.Minute); cur.Before(end); cur = cur.Add(unit) {
		buckets = append(buckets, cur)
	}
	return buckets
}

// ResolveCapacity picks the ceiling for the bucket starting at bucketStart.
// When several rules cover the bucket, a day-of-week-scoped rule beats an
// unscoped one; among equally specific rules the lowest id wins. With no
// matching rule the default applies.
func ResolveCapacity(rules []Rule, bucketStart time.Time, defaultCapacity int) int {
	m := MinuteOfDay(bucketStart)
	day := bucketStart.Weekday()

	best := -1
	for i, r := range rules {
		if !r.matches(m, day) {
			continue
		}
		if best == -1 || moreSpecific(r, rules[best]) {
			best = i
		}
	}
	if best == -1 {
		return defaultCapacity
	}
	return rules[best].MaxCapacity
}

func moreSpecific(a, b Rule) bool {
	if (a.Day != nil) != (b.Day != nil) {
		return a.Day != nil
	}
	return a.ID < b.ID
}

// CountOverlapping counts the windows that intersect [start, end).
func CountOverlapping(windows []Window, start, end time.Time) int {
	count := 0
	for _, w := range windows {
		if Overlaps(w.Start, w.End, start, end) {
			count++
		}
	}
	return count
}

// HasCapacity reports whether every bucket touched by the candidate window
// [start, end) still has headroom. all must hold the active appointments of
// every doctor for the day; an appointment of any length counts against
// each bucket it overlaps.
func (c *Calendar) HasCapacity(all []Window, rules []Rule, start, end time.Time) bool {
	for _, bucketStart := range BucketStarts(start, end, c.capacityUnit) {
		bucketEnd := bucketStart.Add(c.capacityUnit)
		limit := ResolveCapacity(rules, bucketStart, c.defaultCapacity)
		if CountOverlapping(all, bucketStart, bucketEnd) >= limit {
			return false
		}
	}
	return true
}
