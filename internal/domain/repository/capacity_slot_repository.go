package repository

import (
	"time"

	"go-clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type CapacitySlotRepository interface {
	Create(db *gorm.DB, slot *entity.CapacitySlot) error
	FindByID(db *gorm.DB, id int) (*entity.CapacitySlot, error)
	FindAll(db *gorm.DB) ([]entity.CapacitySlot, error)
	FindActive(db *gorm.DB) ([]entity.CapacitySlot, error)
	// FindByRange returns the slot with exactly this [start,end) range and
	// day scope, used to reject duplicate definitions.
	FindByRange(db *gorm.DB, startTime, endTime string, dayOfWeek *time.Weekday) (*entity.CapacitySlot, error)
	Update(db *gorm.DB, slot *entity.CapacitySlot) error
	// Deactivate flips is_active to false and reports how many rows changed.
	// Inactive slots stay on record for the audit trail.
	Deactivate(db *gorm.DB, id int) (int64, error)
}
