package usecase

import (
	"context"
	"testing"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	id := uuid.New()
	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("FindByID", mock.Anything, id).
		Return(&entity.Appointment{ID: id, Status: entity.AppointmentStatusConfirmed}, nil)

	audit := new(mockAuditService)

	u := &appointmentAdminUsecase{
		db:              db,
		log:             newTestLogger(),
		appointmentRepo: apptRepo,
		auditService:    audit,
	}

	res, err := u.UpdateStatus(context.Background(), id, entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), res.Status)

	// No write and no audit entry for a request that changes nothing.
	apptRepo.AssertNumberOfCalls(t, "UpdateStatus", 0)
	audit.AssertNumberOfCalls(t, "LogUpdate", 0)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateStatusInvalidTransitionRejected(t *testing.T) {
	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	id := uuid.New()
	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("FindByID", mock.Anything, id).
		Return(&entity.Appointment{ID: id, Status: entity.AppointmentStatusCompleted}, nil)

	u := &appointmentAdminUsecase{
		db:              db,
		log:             newTestLogger(),
		appointmentRepo: apptRepo,
		auditService:    new(mockAuditService),
	}

	_, err := u.UpdateStatus(context.Background(), id, entity.AppointmentStatusPending)
	derr := apperror.AsDomain(err)
	require.NotNil(t, derr)
	assert.Equal(t, apperror.CodeInvalidTransition, derr.Code)
	apptRepo.AssertNumberOfCalls(t, "UpdateStatus", 0)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateStatusMissingAppointment(t *testing.T) {
	db, dbMock := newMockDB(t)
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	id := uuid.New()
	apptRepo := new(mockAppointmentRepository)
	apptRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	u := &appointmentAdminUsecase{
		db:              db,
		log:             newTestLogger(),
		appointmentRepo: apptRepo,
		auditService:    new(mockAuditService),
	}

	_, err := u.UpdateStatus(context.Background(), id, entity.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
