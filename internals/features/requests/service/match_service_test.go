package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookbridge_backend/internals/features/requests/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func matchedRequest() *model.RequestModel {
	bookID := uuid.New()
	return &model.RequestModel{
		RequestID:            uuid.New(),
		RequestUserID:        uuid.New(),
		RequestStatus:        model.RequestMatched,
		RequestUrgency:       model.UrgencyMedium,
		RequestMatchedBookID: &bookID,
	}
}

func TestFulfillMatchClosesBothRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	req := matchedRequest()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "books" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "requests" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, FulfillMatch(gdb, req))
	assert.Equal(t, model.RequestFulfilled, req.RequestStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFulfillMatchRollsBackWhenBookNotReserved(t *testing.T) {
	gdb, mock := newMockDB(t)
	req := matchedRequest()

	// The conditional update misses: the book left reserved in the
	// meantime. The request row must not move either.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "books" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := FulfillMatch(gdb, req)
	assert.ErrorIs(t, err, ErrBookNotReserved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
