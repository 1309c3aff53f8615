package repository

import (
	"errors"
	"time"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type capacitySlotRepository struct{}

func NewCapacitySlotRepository() domainRepo.CapacitySlotRepository {
	return &capacitySlotRepository{}
}

func (r *capacitySlotRepository) Create(db *gorm.DB, slot *entity.CapacitySlot) error {
	return db.Create(slot).Error
}

func (r *capacitySlotRepository) FindByID(db *gorm.DB, id int) (*entity.CapacitySlot, error) {
	var slot entity.CapacitySlot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *capacitySlotRepository) FindAll(db *gorm.DB) ([]entity.CapacitySlot, error) {
	var slots []entity.CapacitySlot
	err := db.Order("start_time ASC, id ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *capacitySlotRepository) FindActive(db *gorm.DB) ([]entity.CapacitySlot, error) {
	var slots []entity.CapacitySlot
	err := db.Where("is_active = ?", true).Order("start_time ASC, id ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *capacitySlotRepository) FindByRange(db *gorm.DB, startTime, endTime string, dayOfWeek *time.Weekday) (*entity.CapacitySlot, error) {
	query := db.Where("start_time = ? AND end_time = ?", startTime, endTime)
	if dayOfWeek == nil {
		query = query.Where("day_of_week IS NULL")
	} else {
		query = query.Where("day_of_week = ?", int(*dayOfWeek))
	}

	var slot entity.CapacitySlot
	err := query.First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *capacitySlotRepository) Update(db *gorm.DB, slot *entity.CapacitySlot) error {
	return db.Save(slot).Error
}

func (r *capacitySlotRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.CapacitySlot{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
