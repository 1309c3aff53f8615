package usecase

import (
	"context"
	"testing"

	"go-clinic-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeactivateCapacitySlot(t *testing.T) {
	t.Run("marks the slot inactive and drops the rule snapshot", func(t *testing.T) {
		db, dbMock := newMockDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		slotRepo := new(mockCapacitySlotRepository)
		slotRepo.On("Deactivate", mock.Anything, 4).Return(int64(1), nil)

		audit := new(mockAuditService)
		audit.On("LogDelete", mock.Anything, mock.Anything, "admin", entity.AuditActionCapacitySlotDeactivate,
			"capacity_slot", "4", nil).Return(nil)

		cache := &recordingInvalidator{}

		u := &capacitySlotUsecase{
			db:           db,
			log:          newTestLogger(),
			slotRepo:     slotRepo,
			slotCache:    cache,
			auditService: audit,
		}

		require.NoError(t, u.DeactivateCapacitySlot(context.Background(), 4))
		assert.True(t, cache.invalidated)
		slotRepo.AssertExpectations(t)
		audit.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("already inactive slot reports not found", func(t *testing.T) {
		db, dbMock := newMockDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		slotRepo := new(mockCapacitySlotRepository)
		slotRepo.On("Deactivate", mock.Anything, 4).Return(int64(0), nil)

		u := &capacitySlotUsecase{
			db:           db,
			log:          newTestLogger(),
			slotRepo:     slotRepo,
			auditService: new(mockAuditService),
		}

		err := u.DeactivateCapacitySlot(context.Background(), 4)
		assert.ErrorIs(t, err, ErrCapacitySlotNotFound)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
