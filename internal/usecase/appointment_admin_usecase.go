package usecase

import (
	"context"
	"fmt"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type AppointmentAdminUsecase interface {
	ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	GetStatistics(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentStatisticsResponse, error)
}

type appointmentAdminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentAdminUsecase {
	return &appointmentAdminUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// ListAppointments returns a filtered, paginated appointment list
func (u *appointmentAdminUsecase) ListAppointments(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(query.Page, query.Limit)
	offset := (page - 1) * limit

	appointments, total, err := u.appointmentRepo.FindFiltered(u.db.WithContext(ctx), filter, offset, limit)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}

// UpdateStatus moves an appointment through its lifecycle. Setting the
// status it already has is an idempotent no-op; anything the transition
// table forbids is rejected. Every real change is audit-logged in the
// same transaction.
func (u *appointmentAdminUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.Status == status {
		return converter.AppointmentToResponse(appointment), nil
	}

	if !appointment.Status.CanTransitionTo(status) {
		return nil, apperror.New(apperror.CodeInvalidTransition,
			fmt.Sprintf("cannot move appointment from %s to %s", appointment.Status, status))
	}

	oldStatus := appointment.Status
	if err := u.appointmentRepo.UpdateStatus(tx, id, status); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, "admin", entity.AuditActionAppointmentStatus,
		"appointment", id.String(), string(oldStatus), string(status)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	appointment.Status = status
	u.log.Infof("Appointment status updated: id=%s, %s -> %s", id, oldStatus, status)
	return converter.AppointmentToResponse(appointment), nil
}

// GetStatistics aggregates appointment counts by status, day, hour and
// visit type over the filtered set.
func (u *appointmentAdminUsecase) GetStatistics(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentStatisticsResponse, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	byStatus, err := u.appointmentRepo.CountByStatus(db, filter)
	if err != nil {
		u.log.Warnf("Failed to count appointments by status: %+v", err)
		return nil, err
	}
	byDay, err := u.appointmentRepo.CountByDay(db, filter)
	if err != nil {
		u.log.Warnf("Failed to count appointments by day: %+v", err)
		return nil, err
	}
	byHour, err := u.appointmentRepo.CountByHour(db, filter)
	if err != nil {
		u.log.Warnf("Failed to count appointments by hour: %+v", err)
		return nil, err
	}
	byVisitType, err := u.appointmentRepo.CountByVisitType(db, filter)
	if err != nil {
		u.log.Warnf("Failed to count appointments by visit type: %+v", err)
		return nil, err
	}

	stats := &dto.AppointmentStatisticsResponse{
		ByStatus:    make(map[string]int64, len(byStatus)),
		ByDay:       make(map[string]int64, len(byDay)),
		ByHour:      make(map[int]int64, len(byHour)),
		ByVisitType: make(map[string]int64, len(byVisitType)),
	}
	for _, c := range byStatus {
		stats.ByStatus[string(c.Status)] = c.Count
		stats.Total += c.Count
	}
	for _, c := range byDay {
		stats.ByDay[c.Day] = c.Count
	}
	for _, c := range byHour {
		stats.ByHour[c.Hour] = c.Count
	}
	for _, c := range byVisitType {
		stats.ByVisitType[string(c.VisitType)] = c.Count
	}

	return stats, nil
}

// buildFilter converts the validated query DTO into the repository filter.
func buildFilter(query *dto.ListAppointmentsQuery) (*entity.AppointmentFilter, error) {
	filter := &entity.AppointmentFilter{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	}

	if query.DoctorID != "" {
		id, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
		filter.DoctorID = &id
	}
	if query.TreatmentID != "" {
		id, err := uuid.Parse(query.TreatmentID)
		if err != nil {
			return nil, ErrTreatmentNotFound
		}
		filter.TreatmentID = &id
	}
	if query.Status != "" {
		status := entity.AppointmentStatus(query.Status)
		filter.Status = &status
	}
	return filter, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
