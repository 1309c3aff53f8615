package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/scheduling"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a gorm handle over a sqlmock connection so a usecase can
// drive its transaction lifecycle without a real database. Repository calls
// are mocked separately; only BEGIN, COMMIT and ROLLBACK reach the driver.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, dbMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubRuleSource struct {
	rules []scheduling.Rule
}

func (s stubRuleSource) GetActiveRules(ctx context.Context) ([]scheduling.Rule, error) {
	return s.rules, nil
}

type recordingInvalidator struct {
	invalidated bool
}

func (r *recordingInvalidator) Invalidate(ctx context.Context) {
	r.invalidated = true
}

// Repository mocks

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindByIDAndPhone(db *gorm.DB, id uuid.UUID, phone string) (*entity.Appointment, error) {
	args := m.Called(db, id, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindByPatientPhone(db *gorm.DB, phone string) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	args := m.Called(db, id, status)
	return args.Error(0)
}

func (m *mockAppointmentRepository) FindActiveWindowsByDoctor(db *gorm.DB, doctorID uuid.UUID, date *time.Time) ([]scheduling.Window, error) {
	args := m.Called(db, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.Window), args.Error(1)
}

func (m *mockAppointmentRepository) FindActiveWindows(db *gorm.DB, date *time.Time) ([]scheduling.Window, error) {
	args := m.Called(db, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.Window), args.Error(1)
}

func (m *mockAppointmentRepository) HasCompletedByPatient(db *gorm.DB, patientID uuid.UUID) (bool, error) {
	args := m.Called(db, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepository) FindFiltered(db *gorm.DB, filter *entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error) {
	return nil, 0, nil
}

func (m *mockAppointmentRepository) CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) ([]repository.StatusCount, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) CountByDay(db *gorm.DB, filter *entity.AppointmentFilter) ([]repository.DailyCount, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) CountByHour(db *gorm.DB, filter *entity.AppointmentFilter) ([]repository.HourlyCount, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) CountByVisitType(db *gorm.DB, filter *entity.AppointmentFilter) ([]repository.VisitTypeCount, error) {
	return nil, nil
}

type mockDoctorRepository struct {
	mock.Mock
}

func (m *mockDoctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return nil
}

func (m *mockDoctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) FindAll(db *gorm.DB, offset, limit int) ([]entity.Doctor, int64, error) {
	return nil, 0, nil
}

func (m *mockDoctorRepository) FindActive(db *gorm.DB) ([]entity.Doctor, error) {
	return nil, nil
}

func (m *mockDoctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return nil
}

func (m *mockDoctorRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockTreatmentRepository struct {
	mock.Mock
}

func (m *mockTreatmentRepository) Create(db *gorm.DB, treatment *entity.Treatment) error {
	return nil
}

func (m *mockTreatmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Treatment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Treatment), args.Error(1)
}

func (m *mockTreatmentRepository) FindAll(db *gorm.DB, offset, limit int) ([]entity.Treatment, int64, error) {
	return nil, 0, nil
}

func (m *mockTreatmentRepository) FindActive(db *gorm.DB) ([]entity.Treatment, error) {
	return nil, nil
}

func (m *mockTreatmentRepository) Update(db *gorm.DB, treatment *entity.Treatment) error {
	return nil
}

func (m *mockTreatmentRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockPatientRepository struct {
	mock.Mock
}

func (m *mockPatientRepository) FindByPhone(db *gorm.DB, phone string) (*entity.Patient, error) {
	args := m.Called(db, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *mockPatientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(db, patient)
	return args.Error(0)
}

type mockCapacitySlotRepository struct {
	mock.Mock
}

func (m *mockCapacitySlotRepository) Create(db *gorm.DB, slot *entity.CapacitySlot) error {
	return nil
}

func (m *mockCapacitySlotRepository) FindByID(db *gorm.DB, id int) (*entity.CapacitySlot, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CapacitySlot), args.Error(1)
}

func (m *mockCapacitySlotRepository) FindAll(db *gorm.DB) ([]entity.CapacitySlot, error) {
	return nil, nil
}

func (m *mockCapacitySlotRepository) FindActive(db *gorm.DB) ([]entity.CapacitySlot, error) {
	return nil, nil
}

func (m *mockCapacitySlotRepository) FindByRange(db *gorm.DB, startTime, endTime string, dayOfWeek *time.Weekday) (*entity.CapacitySlot, error) {
	args := m.Called(db, startTime, endTime, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CapacitySlot), args.Error(1)
}

func (m *mockCapacitySlotRepository) Update(db *gorm.DB, slot *entity.CapacitySlot) error {
	return nil
}

func (m *mockCapacitySlotRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue interface{}) error {
	args := m.Called(ctx, tx, actor, action, entityName, entityID, oldValue)
	return args.Error(0)
}
