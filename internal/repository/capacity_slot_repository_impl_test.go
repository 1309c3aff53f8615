package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

// Deactivate must retire the row in place, never remove it, so that audit
// entries and past appointments keep a slot to refer to.
func TestCapacitySlotDeactivateUpdatesInPlace(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE "capacity_slots" SET "is_active"`)).
		WithArgs(false, sqlmock.AnyArg(), 3, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCapacitySlotRepository()
	affected, err := repo.Deactivate(db, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCapacitySlotDeactivateAlreadyInactive(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE "capacity_slots" SET "is_active"`)).
		WithArgs(false, sqlmock.AnyArg(), 3, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCapacitySlotRepository()
	affected, err := repo.Deactivate(db, 3)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
