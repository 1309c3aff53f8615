package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusSelfTransitionNotListed(t *testing.T) {
	// same-status updates are handled as no-ops by callers, the table
	// itself never lists them
	for _, s := range []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	} {
		assert.False(t, s.CanTransitionTo(s))
	}
}

func TestAppointmentStatusIsValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.IsValid())
	assert.True(t, AppointmentStatusCancelled.IsValid())
	assert.False(t, AppointmentStatus("unknown").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointmentStatusIsActive(t *testing.T) {
	assert.True(t, AppointmentStatusPending.IsActive())
	assert.True(t, AppointmentStatusConfirmed.IsActive())
	assert.True(t, AppointmentStatusCompleted.IsActive())
	assert.False(t, AppointmentStatusCancelled.IsActive())
}

func TestDetermineVisitType(t *testing.T) {
	assert.Equal(t, VisitTypeFirst, DetermineVisitType(false))
	assert.Equal(t, VisitTypeReturn, DetermineVisitType(true))
}
