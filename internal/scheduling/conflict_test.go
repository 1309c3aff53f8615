package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStartH, aStartM, aEndH, aEndM int
		bStartH, bStartM, bEndH, bEndM int
		want                           bool
	}{
		{"identical", 10, 0, 10, 30, 10, 0, 10, 30, true},
		{"partial overlap", 10, 0, 10, 30, 10, 15, 10, 45, true},
		{"contained", 10, 0, 11, 0, 10, 15, 10, 30, true},
		{"back to back", 10, 0, 10, 30, 10, 30, 11, 0, false},
		{"disjoint", 10, 0, 10, 30, 11, 0, 11, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				at(monday, tt.aStartH, tt.aStartM), at(monday, tt.aEndH, tt.aEndM),
				at(monday, tt.bStartH, tt.bStartM), at(monday, tt.bEndH, tt.bEndM),
			)
			assert.Equal(t, tt.want, got)
			// symmetry
			got = Overlaps(
				at(monday, tt.bStartH, tt.bStartM), at(monday, tt.bEndH, tt.bEndM),
				at(monday, tt.aStartH, tt.aStartM), at(monday, tt.aEndH, tt.aEndM),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDoctorAvailable(t *testing.T) {
	windows := []Window{
		window(monday, 10, 0, 10, 30),
		window(monday, 14, 0, 15, 0),
	}

	assert.True(t, DoctorAvailable(windows, at(monday, 9, 0), at(monday, 10, 0)))
	assert.True(t, DoctorAvailable(windows, at(monday, 10, 30), at(monday, 11, 0)))
	assert.False(t, DoctorAvailable(windows, at(monday, 10, 15), at(monday, 10, 45)))
	assert.False(t, DoctorAvailable(windows, at(monday, 13, 30), at(monday, 14, 30)))
	assert.True(t, DoctorAvailable(nil, at(monday, 10, 0), at(monday, 10, 30)))
}

func TestDoctorAvailableIgnoresOtherDays(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	windows := []Window{window(monday, 10, 0, 10, 30)}

	assert.True(t, DoctorAvailable(windows, at(tuesday, 10, 0), at(tuesday, 10, 30)))
}
