package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-clinic-booking/config"
	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/scheduling"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = apperror.New(apperror.CodeNotFound, "appointment not found")
	ErrDoctorNotFound      = apperror.New(apperror.CodeNotFound, "doctor not found")
	ErrTreatmentNotFound   = apperror.New(apperror.CodeNotFound, "treatment not found")
	ErrTimeNotBookable     = apperror.New(apperror.CodeTimeInvalid, "requested time is not bookable")
	ErrDoctorBusy          = apperror.New(apperror.CodeAlreadyExists, "doctor already has an appointment in that window")
	ErrCapacityFull        = apperror.New(apperror.CodeCapacityFull, "clinic is fully booked for that time")
	ErrAlreadyCancelled    = apperror.New(apperror.CodeAlreadyCancelled, "appointment is already cancelled")
)

const (
	// How many times a serializable transaction is retried after a
	// serialization failure before the error is surfaced.
	maxBookingRetries = 3

	// pgSerializationFailure is the Postgres SQLSTATE raised when two
	// serializable transactions conflict.
	pgSerializationFailure = "40001"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointmentsByPhone(ctx context.Context, phone string) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, phone string) error
	GetAvailableTimes(ctx context.Context, query *dto.AvailableTimesQuery) (*dto.AvailableTimesResponse, error)
}

// capacityRuleSource yields the capacity rules in force, normally backed by
// the slot cache service.
type capacityRuleSource interface {
	GetActiveRules(ctx context.Context) ([]scheduling.Rule, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	calendar        *scheduling.Calendar
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	treatmentRepo   repository.TreatmentRepository
	patientRepo     repository.PatientRepository
	slotCache       capacityRuleSource
	minLeadTime     time.Duration
	maxAdvance      time.Duration

	// now is swappable in tests
	now func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	calendar *scheduling.Calendar,
	clinicConfig config.ClinicConfig,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	treatmentRepo repository.TreatmentRepository,
	patientRepo repository.PatientRepository,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		calendar:        calendar,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		treatmentRepo:   treatmentRepo,
		patientRepo:     patientRepo,
		slotCache:       slotCache,
		minLeadTime:     clinicConfig.MinLeadTime,
		maxAdvance:      time.Duration(clinicConfig.MaxAdvanceDays) * 24 * time.Hour,
		now:             time.Now,
	}
}

// CreateAppointment books a treatment window.
//
// Flow:
// 1. Validate the requested time against the clinic calendar and the
//    booking lead-time bounds
// 2. Load the doctor and treatment, both must exist and be active
// 3. Load the capacity rules from the slot cache
// 4. Inside a SERIALIZABLE transaction: get-or-create the patient,
//    classify the visit, re-check doctor conflict and bucket capacity
//    against committed state, insert
// 5. Retry the transaction on serialization failure (SQLSTATE 40001)
//
// The serializable isolation level is what makes the capacity ceiling
// hold under concurrent bookings: two transactions that both read the
// same bucket count and both insert cannot both commit.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), req.TreatmentID)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s: %+v", req.TreatmentID, err)
		return nil, err
	}
	if treatment == nil || !treatment.IsActive {
		return nil, ErrTreatmentNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	startAt := req.StartAt
	endAt := startAt.Add(treatment.Duration())

	if err := u.validateBookingTime(startAt, endAt); err != nil {
		return nil, err
	}

	rules, err := u.slotCache.GetActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	var created *entity.Appointment
	for attempt := 0; ; attempt++ {
		created, err = u.tryCreateAppointment(ctx, req, startAt, endAt, rules)
		if err == nil {
			break
		}
		if isSerializationFailure(err) && attempt < maxBookingRetries {
			u.log.Debugf("Serialization conflict on booking attempt %d, retrying", attempt+1)
			continue
		}
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), created.ID)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", created.ID, err)
		return converter.AppointmentToResponse(created), nil
	}
	if full == nil {
		u.log.Warnf("Appointment %s not visible on reload", created.ID)
		return converter.AppointmentToResponse(created), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, start=%s", created.ID, req.DoctorID, startAt.Format(time.RFC3339))
	return converter.AppointmentToResponse(full), nil
}

// tryCreateAppointment runs one serializable attempt.
func (u *appointmentUsecase) tryCreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest, startAt, endAt time.Time, rules []scheduling.Rule) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByPhone(tx, req.PatientPhone)
	if err != nil {
		u.log.Warnf("Failed to find patient by phone: %+v", err)
		return nil, err
	}
	if patient == nil {
		patient = &entity.Patient{
			Name:  req.PatientName,
			Phone: req.PatientPhone,
		}
		if err := u.patientRepo.Create(tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}
	}

	hasCompleted, err := u.appointmentRepo.HasCompletedByPatient(tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check patient history: %+v", err)
		return nil, err
	}

	doctorWindows, err := u.appointmentRepo.FindActiveWindowsByDoctor(tx, req.DoctorID, &startAt)
	if err != nil {
		u.log.Warnf("Failed to load doctor windows: %+v", err)
		return nil, err
	}
	if !scheduling.DoctorAvailable(doctorWindows, startAt, endAt) {
		return nil, ErrDoctorBusy
	}

	allWindows, err := u.appointmentRepo.FindActiveWindows(tx, &startAt)
	if err != nil {
		u.log.Warnf("Failed to load appointment windows: %+v", err)
		return nil, err
	}
	if !u.calendar.HasCapacity(allWindows, rules, startAt, endAt) {
		return nil, ErrCapacityFull
	}

	appointment := &entity.Appointment{
		DoctorID:    req.DoctorID,
		PatientID:   patient.ID,
		TreatmentID: req.TreatmentID,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      entity.AppointmentStatusPending,
		VisitType:   entity.DetermineVisitType(hasCompleted),
		Memo:        req.Memo,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetAppointmentsByPhone returns all appointments booked under a phone number
func (u *appointmentUsecase) GetAppointmentsByPhone(ctx context.Context, phone string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientPhone(u.db.WithContext(ctx), phone)
	if err != nil {
		u.log.Warnf("Failed to find appointments by phone: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
		Page:         1,
		Limit:        len(appointments),
	}, nil
}

// CancelAppointment cancels the appointment identified by id, verifying
// ownership through the phone number. Cancelling twice is an error,
// cancellation of a completed appointment is also rejected.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, phone string) error {
	for attempt := 0; ; attempt++ {
		err := u.tryCancelAppointment(ctx, id, phone)
		if err == nil {
			return nil
		}
		if isSerializationFailure(err) && attempt < maxBookingRetries {
			u.log.Debugf("Serialization conflict on cancel attempt %d, retrying", attempt+1)
			continue
		}
		return err
	}
}

func (u *appointmentUsecase) tryCancelAppointment(ctx context.Context, id uuid.UUID, phone string) error {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDAndPhone(tx, id, phone)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.IsCancelled() {
		return ErrAlreadyCancelled
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return apperror.New(apperror.CodeInvalidTransition,
			fmt.Sprintf("cannot cancel a %s appointment", appointment.Status))
	}

	if err := u.appointmentRepo.UpdateStatus(tx, id, entity.AppointmentStatusCancelled); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Appointment cancelled: id=%s", id)
	return nil
}

// GetAvailableTimes lists the bookable start times for a doctor, treatment
// and date. A slot is bookable when it is aligned, inside operating hours,
// within the lead-time bounds, free of doctor conflict and under the
// capacity ceiling of every bucket it touches.
//
// This is a read-only preview over committed state; the booking itself
// re-checks everything inside its transaction.
func (u *appointmentUsecase) GetAvailableTimes(ctx context.Context, query *dto.AvailableTimesQuery) (*dto.AvailableTimesResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(u.db.WithContext(ctx), query.TreatmentID)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s: %+v", query.TreatmentID, err)
		return nil, err
	}
	if treatment == nil || !treatment.IsActive {
		return nil, ErrTreatmentNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), query.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", query.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	date, err := time.ParseInLocation("2006-01-02", query.Date, time.Local)
	if err != nil {
		return nil, ErrTimeNotBookable
	}

	rules, err := u.slotCache.GetActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	doctorWindows, err := u.appointmentRepo.FindActiveWindowsByDoctor(db, query.DoctorID, &date)
	if err != nil {
		u.log.Warnf("Failed to load doctor windows: %+v", err)
		return nil, err
	}
	allWindows, err := u.appointmentRepo.FindActiveWindows(db, &date)
	if err != nil {
		u.log.Warnf("Failed to load appointment windows: %+v", err)
		return nil, err
	}

	duration := treatment.Duration()
	now := u.now()
	earliest := now.Add(u.minLeadTime)
	latest := now.Add(u.maxAdvance)

	times := []string{}
	for start := range u.calendar.Slots(date, duration) {
		if start.Before(earliest) || start.After(latest) {
			continue
		}
		end := start.Add(duration)
		if !scheduling.DoctorAvailable(doctorWindows, start, end) {
			continue
		}
		if !u.calendar.HasCapacity(allWindows, rules, start, end) {
			continue
		}
		times = append(times, start.Format("15:04"))
	}

	return &dto.AvailableTimesResponse{
		Date:           query.Date,
		AvailableTimes: times,
	}, nil
}

// validateBookingTime checks slot alignment, the clinic calendar and the
// lead-time bounds. All violations map to the same time_invalid code.
func (u *appointmentUsecase) validateBookingTime(startAt, endAt time.Time) error {
	if !u.calendar.IsAligned(startAt) {
		return ErrTimeNotBookable
	}
	if !u.calendar.IsOperatingDay(startAt.Weekday()) {
		return ErrTimeNotBookable
	}
	if !u.calendar.WithinOperatingHours(startAt, endAt) {
		return ErrTimeNotBookable
	}

	now := u.now()
	if startAt.Before(now.Add(u.minLeadTime)) {
		return ErrTimeNotBookable
	}
	if startAt.After(now.Add(u.maxAdvance)) {
		return ErrTimeNotBookable
	}
	return nil
}

// isSerializationFailure reports whether err is a Postgres serialization
// failure that is safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}
