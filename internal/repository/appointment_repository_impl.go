package repository

import (
	"errors"
	"time"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Preload("Treatment").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDAndPhone(db *gorm.DB, id uuid.UUID, phone string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Preload("Treatment").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.id = ? AND patients.phone = ?", id, phone).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientPhone(db *gorm.DB, phone string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Preload("Treatment").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("patients.phone = ?", phone).
		Order("appointments.start_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) FindActiveWindowsByDoctor(db *gorm.DB, doctorID uuid.UUID, date *time.Time) ([]scheduling.Window, error) {
	query := db.Model(&entity.Appointment{}).
		Select("doctor_id, start_at, end_at").
		Where("doctor_id = ? AND status != ?", doctorID, entity.AppointmentStatusCancelled)
	return scanWindows(applyDayBounds(query, date))
}

func (r *appointmentRepository) FindActiveWindows(db *gorm.DB, date *time.Time) ([]scheduling.Window, error) {
	query := db.Model(&entity.Appointment{}).
		Select("doctor_id, start_at, end_at").
		Where("status != ?", entity.AppointmentStatusCancelled)
	return scanWindows(applyDayBounds(query, date))
}

func (r *appointmentRepository) HasCompletedByPatient(db *gorm.DB, patientID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND status = ?", patientID, entity.AppointmentStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindFiltered(db *gorm.DB, filter *entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error) {
	var total int64
	query := applyFilter(db.Model(&entity.Appointment{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := applyFilter(db.Model(&entity.Appointment{}), filter).
		Preload("Doctor").Preload("Patient").Preload("Treatment").
		Order("start_at DESC").
		Offset(offset).Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) ([]domainRepo.StatusCount, error) {
	var counts []domainRepo.StatusCount
	err := applyFilter(db.Model(&entity.Appointment{}), filter).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *appointmentRepository) CountByDay(db *gorm.DB, filter *entity.AppointmentFilter) ([]domainRepo.DailyCount, error) {
	var counts []domainRepo.DailyCount
	err := applyFilter(db.Model(&entity.Appointment{}), filter).
		Select("TO_CHAR(start_at, 'YYYY-MM-DD') as day, COUNT(*) as count").
		Group("day").
		Order("day").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *appointmentRepository) CountByHour(db *gorm.DB, filter *entity.AppointmentFilter) ([]domainRepo.HourlyCount, error) {
	var counts []domainRepo.HourlyCount
	err := applyFilter(db.Model(&entity.Appointment{}), filter).
		Select("EXTRACT(HOUR FROM start_at)::int as hour, COUNT(*) as count").
		Group("hour").
		Order("hour").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *appointmentRepository) CountByVisitType(db *gorm.DB, filter *entity.AppointmentFilter) ([]domainRepo.VisitTypeCount, error) {
	var counts []domainRepo.VisitTypeCount
	err := applyFilter(db.Model(&entity.Appointment{}), filter).
		Select("visit_type, COUNT(*) as count").
		Group("visit_type").
		Order("visit_type").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// applyFilter translates the domain filter into WHERE clauses. The filter
// is evaluated here, in the store, never in the usecase layer.
func applyFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.StartDate != "" {
		query = query.Where("start_at >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		// inclusive end date: everything before the next midnight
		query = query.Where("start_at < (?::date + INTERVAL '1 day')", filter.EndDate)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.TreatmentID != nil {
		query = query.Where("treatment_id = ?", *filter.TreatmentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

func applyDayBounds(query *gorm.DB, date *time.Time) *gorm.DB {
	if date == nil {
		return query
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return query.Where("start_at >= ? AND start_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
}

func scanWindows(query *gorm.DB) ([]scheduling.Window, error) {
	var rows []struct {
		DoctorID uuid.UUID
		StartAt  time.Time
		EndAt    time.Time
	}
	if err := query.Order("start_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	windows := make([]scheduling.Window, len(rows))
	for i, row := range rows {
		windows[i] = scheduling.Window{DoctorID: row.DoctorID, Start: row.StartAt, End: row.EndAt}
	}
	return windows, nil
}
