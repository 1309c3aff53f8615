package repository

import (
	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB, offset, limit int) ([]entity.Doctor, int64, error)
	FindActive(db *gorm.DB) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	// Deactivate soft-deletes the doctor; existing appointments stand.
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
