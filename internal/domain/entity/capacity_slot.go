package entity

import (
	"time"
)

// CapacitySlot caps the number of concurrent appointments, across all
// doctors, inside a half-open time-of-day range [StartTime, EndTime).
// DayOfWeek nil means the slot applies every day. Buckets no slot covers
// fall back to the configured default capacity.
//
// Slots are not foreign-keyed to appointments; matching is computed at
// query time by time-of-day (and day-of-week) containment.
type CapacitySlot struct {
	ID          int           `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime   string        `gorm:"type:time;not null" json:"start_time"` // HH:MM
	EndTime     string        `gorm:"type:time;not null" json:"end_time"`   // HH:MM
	MaxCapacity int           `gorm:"not null" json:"max_capacity"`
	DayOfWeek   *time.Weekday `gorm:"type:smallint" json:"day_of_week,omitempty"`
	IsActive    bool          `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CapacitySlot) TableName() string {
	return "capacity_slots"
}
