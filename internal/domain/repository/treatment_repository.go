package repository

import (
	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(db *gorm.DB, treatment *entity.Treatment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Treatment, error)
	FindAll(db *gorm.DB, offset, limit int) ([]entity.Treatment, int64, error)
	FindActive(db *gorm.DB) ([]entity.Treatment, error)
	Update(db *gorm.DB, treatment *entity.Treatment) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
