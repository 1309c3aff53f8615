package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/scheduling"
	"go-clinic-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(t *testing.T, now time.Time) *appointmentUsecase {
	t.Helper()
	calendar, err := scheduling.NewCalendar(scheduling.Settings{
		OpenTime:        "09:00",
		CloseTime:       "18:00",
		LunchStartTime:  "12:00",
		LunchEndTime:    "13:00",
		OperatingDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		SlotInterval:    15 * time.Minute,
		CapacityUnit:    30 * time.Minute,
		DefaultCapacity: 3,
	})
	require.NoError(t, err)

	return &appointmentUsecase{
		calendar:    calendar,
		minLeadTime: 2 * time.Hour,
		maxAdvance:  30 * 24 * time.Hour,
		now:         func() time.Time { return now },
	}
}

func TestValidateBookingTime(t *testing.T) {
	// Monday 2026-09-07, 08:00 clinic time
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	u := newTestUsecase(t, now)

	day := func(offset int, hour, minute int) time.Time {
		return time.Date(2026, 9, 7+offset, hour, minute, 0, 0, time.UTC)
	}

	t.Run("valid aligned slot", func(t *testing.T) {
		assert.NoError(t, u.validateBookingTime(day(0, 10, 30), day(0, 11, 0)))
	})

	t.Run("unaligned start rejected", func(t *testing.T) {
		err := u.validateBookingTime(day(0, 10, 10), day(0, 10, 40))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})

	t.Run("non operating day rejected", func(t *testing.T) {
		// 2026-09-13 is a Sunday
		err := u.validateBookingTime(day(6, 10, 0), day(6, 10, 30))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})

	t.Run("lunch overlap rejected", func(t *testing.T) {
		err := u.validateBookingTime(day(0, 11, 45), day(0, 12, 15))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})

	t.Run("past close rejected", func(t *testing.T) {
		err := u.validateBookingTime(day(0, 17, 45), day(0, 18, 15))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})

	t.Run("inside minimum lead time rejected", func(t *testing.T) {
		// 09:30 is only 90 minutes from now
		err := u.validateBookingTime(day(0, 9, 30), day(0, 10, 0))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})

	t.Run("exactly at lead boundary allowed", func(t *testing.T) {
		assert.NoError(t, u.validateBookingTime(day(0, 10, 0), day(0, 10, 30)))
	})

	t.Run("beyond advance horizon rejected", func(t *testing.T) {
		// 31 days out, a Thursday
		err := u.validateBookingTime(day(31, 10, 0), day(31, 10, 30))
		assert.ErrorIs(t, err, ErrTimeNotBookable)
	})
}

func TestCancelAppointmentSecondAttemptFails(t *testing.T) {
	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	id := uuid.New()
	phone := "01012345678"

	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("FindByIDAndPhone", mock.Anything, id, phone).
		Return(&entity.Appointment{ID: id, Status: entity.AppointmentStatusPending}, nil).Once()
	apptRepo.On("UpdateStatus", mock.Anything, id, entity.AppointmentStatusCancelled).
		Return(nil).Once()
	apptRepo.On("FindByIDAndPhone", mock.Anything, id, phone).
		Return(&entity.Appointment{ID: id, Status: entity.AppointmentStatusCancelled}, nil).Once()

	u := &appointmentUsecase{
		db:              db,
		log:             newTestLogger(),
		appointmentRepo: apptRepo,
	}

	require.NoError(t, u.CancelAppointment(context.Background(), id, phone))

	err := u.CancelAppointment(context.Background(), id, phone)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	apptRepo.AssertNumberOfCalls(t, "UpdateStatus", 1)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCancelCompletedAppointmentRejected(t *testing.T) {
	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	id := uuid.New()
	phone := "01012345678"

	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("FindByIDAndPhone", mock.Anything, id, phone).
		Return(&entity.Appointment{ID: id, Status: entity.AppointmentStatusCompleted}, nil)

	u := &appointmentUsecase{
		db:              db,
		log:             newTestLogger(),
		appointmentRepo: apptRepo,
	}

	err := u.CancelAppointment(context.Background(), id, phone)
	derr := apperror.AsDomain(err)
	require.NotNil(t, derr)
	assert.Equal(t, apperror.CodeInvalidTransition, derr.Code)
	apptRepo.AssertNumberOfCalls(t, "UpdateStatus", 0)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateAppointmentReturnsBookingWhenReloadMisses(t *testing.T) {
	now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	u := newTestUsecase(t, now)

	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	doctorID := uuid.New()
	treatmentID := uuid.New()
	patientID := uuid.New()
	createdID := uuid.New()
	startAt := time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)

	treatmentRepo := new(mockTreatmentRepository)
	treatmentRepo.On("FindByID", mock.Anything, treatmentID).
		Return(&entity.Treatment{ID: treatmentID, Name: "Scaling", DurationMinutes: 30, IsActive: true}, nil)

	doctorRepo := new(mockDoctorRepository)
	doctorRepo.On("FindByID", mock.Anything, doctorID).
		Return(&entity.Doctor{ID: doctorID, Name: "Dr. Han", IsActive: true}, nil)

	patientRepo := new(mockPatientRepository)
	patientRepo.On("FindByPhone", mock.Anything, "01012345678").
		Return(&entity.Patient{ID: patientID, Name: "Kim", Phone: "01012345678"}, nil)

	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("HasCompletedByPatient", mock.Anything, patientID).Return(false, nil)
	apptRepo.On("FindActiveWindowsByDoctor", mock.Anything, doctorID, mock.Anything).Return(nil, nil)
	apptRepo.On("FindActiveWindows", mock.Anything, mock.Anything).Return(nil, nil)
	apptRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Appointment).ID = createdID
		}).Return(nil)
	// Reload sees nothing, the booking response is served from the insert.
	apptRepo.On("FindByID", mock.Anything, createdID).Return(nil, nil)

	u.db = db
	u.log = newTestLogger()
	u.appointmentRepo = apptRepo
	u.doctorRepo = doctorRepo
	u.treatmentRepo = treatmentRepo
	u.patientRepo = patientRepo
	u.slotCache = stubRuleSource{}

	res, err := u.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID:     doctorID,
		TreatmentID:  treatmentID,
		PatientName:  "Kim",
		PatientPhone: "01012345678",
		StartAt:      startAt,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, createdID, res.ID)
	assert.Equal(t, string(entity.AppointmentStatusPending), res.Status)
	assert.Equal(t, string(entity.VisitTypeFirst), res.VisitType)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isSerializationFailure(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"})))
	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("plain failure")))
	assert.False(t, isSerializationFailure(nil))
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	page, limit = normalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, maxPageLimit, limit)

	page, limit = normalizePage(2, 10)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, limit)
}
