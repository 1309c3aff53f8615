package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Window is an occupied appointment interval [Start, End).
type Window struct {
	DoctorID uuid.UUID
	Start    time.Time
	End      time.Time
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect: aStart < bEnd && bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DoctorAvailable reports whether the candidate window [start, end) is free
// of overlap with the doctor's existing appointments. windows must already
// be scoped to one doctor and exclude cancelled appointments; different
// doctors may legally hold overlapping windows.
func DoctorAvailable(windows []Window, start, end time.Time) bool {
	for _, w := range windows {
		if Overlaps(start, end, w.Start, w.End) {
			return false
		}
	}
	return true
}
