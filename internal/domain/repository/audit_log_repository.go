package repository

import (
	"go-clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindRecent(db *gorm.DB, offset, limit int) ([]entity.AuditLog, int64, error)
}
