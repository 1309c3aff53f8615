package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	return Settings{
		OpenTime:        "09:00",
		CloseTime:       "18:00",
		LunchStartTime:  "12:00",
		LunchEndTime:    "13:00",
		OperatingDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		SlotInterval:    15 * time.Minute,
		CapacityUnit:    30 * time.Minute,
		DefaultCapacity: 3,
	}
}

func mustCalendar(t *testing.T) *Calendar {
	t.Helper()
	c, err := NewCalendar(testSettings())
	require.NoError(t, err)
	return c
}

// 2026-09-07 is a Monday
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func at(base time.Time, hour, minute int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

func TestNewCalendarValidation(t *testing.T) {
	t.Run("rejects malformed open time", func(t *testing.T) {
		s := testSettings()
		s.OpenTime = "9am"
		_, err := NewCalendar(s)
		assert.Error(t, err)
	})

	t.Run("rejects open after close", func(t *testing.T) {
		s := testSettings()
		s.OpenTime = "19:00"
		_, err := NewCalendar(s)
		assert.Error(t, err)
	})

	t.Run("rejects zero capacity unit", func(t *testing.T) {
		s := testSettings()
		s.CapacityUnit = 0
		_, err := NewCalendar(s)
		assert.Error(t, err)
	})
}

func TestSlotsLunchExclusion(t *testing.T) {
	c := mustCalendar(t)

	slots := collect(c.Slots(monday, 30*time.Minute))

	// 11:30 ends exactly at lunch start, still bookable
	assert.Contains(t, slots, at(monday, 11, 30))
	// 11:45 would run into lunch
	assert.NotContains(t, slots, at(monday, 11, 45))
	// nothing starts inside lunch
	assert.NotContains(t, slots, at(monday, 12, 0))
	assert.NotContains(t, slots, at(monday, 12, 45))
	// 13:00 resumes after lunch
	assert.Contains(t, slots, at(monday, 13, 0))
}

func TestSlotsCloseBoundary(t *testing.T) {
	c := mustCalendar(t)

	t.Run("30 minute treatment", func(t *testing.T) {
		slots := collect(c.Slots(monday, 30*time.Minute))
		assert.Contains(t, slots, at(monday, 17, 30))
		assert.NotContains(t, slots, at(monday, 17, 45))
	})

	t.Run("60 minute treatment", func(t *testing.T) {
		slots := collect(c.Slots(monday, 60*time.Minute))
		assert.Contains(t, slots, at(monday, 17, 0))
		assert.NotContains(t, slots, at(monday, 17, 15))
	})
}

func TestSlotsNonOperatingDay(t *testing.T) {
	c := mustCalendar(t)

	sunday := monday.AddDate(0, 0, -1)
	assert.Empty(t, collect(c.Slots(sunday, 30*time.Minute)))
}

func TestSlotsRestartable(t *testing.T) {
	c := mustCalendar(t)
	seq := c.Slots(monday, 30*time.Minute)

	first := collect(seq)
	second := collect(seq)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestSlotsEarlyBreak(t *testing.T) {
	c := mustCalendar(t)

	var got []time.Time
	for s := range c.Slots(monday, 30*time.Minute) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []time.Time{at(monday, 9, 0), at(monday, 9, 15), at(monday, 9, 30)}, got)
}

func TestIsAligned(t *testing.T) {
	c := mustCalendar(t)

	assert.True(t, c.IsAligned(at(monday, 10, 0)))
	assert.True(t, c.IsAligned(at(monday, 10, 45)))
	assert.False(t, c.IsAligned(at(monday, 10, 10)))
	assert.False(t, c.IsAligned(at(monday, 10, 0).Add(30*time.Second)))
}

func TestWithinOperatingHours(t *testing.T) {
	c := mustCalendar(t)

	assert.True(t, c.WithinOperatingHours(at(monday, 9, 0), at(monday, 9, 30)))
	assert.True(t, c.WithinOperatingHours(at(monday, 17, 30), at(monday, 18, 0)))
	assert.False(t, c.WithinOperatingHours(at(monday, 8, 45), at(monday, 9, 15)))
	assert.False(t, c.WithinOperatingHours(at(monday, 17, 45), at(monday, 18, 15)))
	assert.False(t, c.WithinOperatingHours(at(monday, 11, 45), at(monday, 12, 15)))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func collect(seq func(func(time.Time) bool)) []time.Time {
	var out []time.Time
	seq(func(t time.Time) bool {
		out = append(out, t)
		return true
	})
	return out
}
