package repository

import (
	"go-clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	FindByPhone(db *gorm.DB, phone string) (*entity.Patient, error)
	Create(db *gorm.DB, patient *entity.Patient) error
}
