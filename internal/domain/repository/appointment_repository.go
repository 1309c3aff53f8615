package repository

import (
	"time"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusCount is one row of the per-status statistics breakdown.
type StatusCount struct {
	Status entity.AppointmentStatus
	Count  int64
}

// DailyCount is one row of the per-day statistics breakdown.
type DailyCount struct {
	Day   string // YYYY-MM-DD
	Count int64
}

// HourlyCount is one row of the per-hour statistics breakdown.
type HourlyCount struct {
	Hour  int
	Count int64
}

// VisitTypeCount is one row of the per-visit-type statistics breakdown.
type VisitTypeCount struct {
	VisitType entity.VisitType
	Count     int64
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByIDAndPhone scopes the lookup by the owning patient's phone so a
	// non-owner and a nonexistent id are indistinguishable.
	FindByIDAndPhone(db *gorm.DB, id uuid.UUID, phone string) (*entity.Appointment, error)
	FindByPatientPhone(db *gorm.DB, phone string) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error

	// FindActiveWindowsByDoctor returns the non-cancelled [start,end)
	// windows of one doctor, optionally limited to a single day.
	FindActiveWindowsByDoctor(db *gorm.DB, doctorID uuid.UUID, date *time.Time) ([]scheduling.Window, error)
	// FindActiveWindows returns the non-cancelled windows of all doctors.
	FindActiveWindows(db *gorm.DB, date *time.Time) ([]scheduling.Window, error)

	HasCompletedByPatient(db *gorm.DB, patientID uuid.UUID) (bool, error)

	FindFiltered(db *gorm.DB, filter *entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error)
	CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) ([]StatusCount, error)
	CountByDay(db *gorm.DB, filter *entity.AppointmentFilter) ([]DailyCount, error)
	CountByHour(db *gorm.DB, filter *entity.AppointmentFilter) ([]HourlyCount, error)
	CountByVisitType(db *gorm.DB, filter *entity.AppointmentFilter) ([]VisitTypeCount, error)
}
