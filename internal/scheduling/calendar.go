// Package scheduling holds the pure appointment scheduling core: slot
// generation, interval overlap, doctor conflict detection and bucketed
// capacity accounting. Nothing in here performs I/O; callers fetch the
// appointment windows and capacity rules and pass them in.
package scheduling

import (
	"fmt"
	"iter"
	"time"
)

// Settings mirrors the clinic calendar configuration in plain values so the
// package stays independent of the config loader.
type Settings struct {
	OpenTime        string // HH:MM
	CloseTime       string // HH:MM
	LunchStartTime  string // HH:MM
	LunchEndTime    string // HH:MM
	OperatingDays   []time.Weekday
	SlotInterval    time.Duration
	CapacityUnit    time.Duration
	DefaultCapacity int
}

// Calendar is the compiled clinic calendar. Times of day are kept as
// minutes from midnight; all interval math uses half-open [start, end)
// ranges in the single implicit clinic timezone.
type Calendar struct {
	openMinute      int
	closeMinute     int
	lunchStartMin   int
	lunchEndMin     int
	operatingDays   map[time.Weekday]bool
	slotInterval    time.Duration
	capacityUnit    time.Duration
	defaultCapacity int
}

// NewCalendar compiles the settings, validating the HH:MM fields and the
// granularity values.
func NewCalendar(s Settings) (*Calendar, error) {
	open, err := ParseClock(s.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	clos, err := ParseClock(s.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}
	lunchStart, err := ParseClock(s.LunchStartTime)
	if err != nil {
		return nil, fmt.Errorf("lunch start: %w", err)
	}
	lunchEnd, err := ParseClock(s.LunchEndTime)
	if err != nil {
		return nil, fmt.Errorf("lunch end: %w", err)
	}
	if open >= clos {
		return nil, fmt.Errorf("open time %s must precede close time %s", s.OpenTime, s.CloseTime)
	}
	if s.SlotInterval <= 0 || s.CapacityUnit <= 0 {
		return nil, fmt.Errorf("slot interval and capacity unit must be positive")
	}
	if s.DefaultCapacity <= 0 {
		return nil, fmt.Errorf("default capacity must be positive")
	}

	days := make(map[time.Weekday]bool, len(s.OperatingDays))
	for _, d := range s.OperatingDays {
		days[d] = true
	}

	return &Calendar{
		openMinute:      open,
		closeMinute:     clos,
		lunchStartMin:   lunchStart,
		lunchEndMin:     lunchEnd,
		operatingDays:   days,
		slotInterval:    s.SlotInterval,
		capacityUnit:    s.CapacityUnit,
		defaultCapacity: s.DefaultCapacity,
	}, nil
}

// IsOperatingDay reports whether the clinic is open on the given weekday.
func (c *Calendar) IsOperatingDay(day time.Weekday) bool {
	return c.operatingDays[day]
}

// CapacityUnit returns the width of one capacity accounting bucket.
func (c *Calendar) CapacityUnit() time.Duration {
	return c.capacityUnit
}

// DefaultCapacity returns the bucket capacity used when no rule matches.
func (c *Calendar) DefaultCapacity() int {
	return c.defaultCapacity
}

// WithinOperatingHours reports whether [start, end) fits inside the
// operating window and clears the lunch break.
func (c *Calendar) WithinOperatingHours(start, end time.Time) bool {
	day := midnight(start)
	open := day.Add(time.Duration(c.openMinute) * time.Minute)
	close := day.Add(time.Duration(c.closeMinute) * time.Minute)
	lunchStart := day.Add(time.Duration(c.lunchStartMin) * time.Minute)
	lunchEnd := day.Add(time.Duration(c.lunchEndMin) * time.Minute)

	if start.Before(open) || end.After(close) {
		return false
	}
	return !Overlaps(start, end, lunchStart, lunchEnd)
}

// Slots yields the candidate start times on date for an appointment of the
// given duration: every slot-interval step from opening time, skipping any
// candidate whose window [start, start+duration) touches the lunch break or
// runs past closing. The sequence is empty on non-operating days and is
// restartable.
func (c *Calendar) Slots(date time.Time, duration time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !c.IsOperatingDay(date.Weekday()) {
			return
		}

		day := midnight(date)
		open := day.Add(time.Duration(c.openMinute) * time.Minute)
		close := day.Add(time.Duration(c.closeMinute) * time.Minute)
		lunchStart := day.Add(time.Duration(c.lunchStartMin) * time.Minute)
		lunchEnd := day.Add(time.Duration(c.lunchEndMin) * time.Minute)

		for cur := open; cur.Before(close); cur = cur.Add(c.slotInterval) {
			end := cur.Add(duration)
			if Overlaps(cur, end, lunchStart, lunchEnd) {
				continue
			}
			if end.After(close) {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// IsAligned reports whether t falls on a slot-interval boundary.
func (c *Calendar) IsAligned(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	return t.Second() == 0 && t.Nanosecond() == 0 &&
		minute%int(c.slotInterval/time.Minute) == 0
}

// ParseClock converts an HH:MM string into minutes from midnight.
// Accepts HH:MM:SS too, Postgres time columns scan back with seconds.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinuteOfDay returns t's offset from midnight in minutes.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
