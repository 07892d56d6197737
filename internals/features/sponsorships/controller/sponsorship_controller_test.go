package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	requestModel "bookbridge_backend/internals/features/requests/model"
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

func newSponsorApp(gdb *gorm.DB) *fiber.App {
	ctrl := NewSponsorshipController(gdb)
	app := fiber.New()
	app.Patch("/sponsor/requests/:id/status", ctrl.UpdateSponsorRequestStatus)
	return app
}

func patchStatus(app *fiber.App, requestID uuid.UUID, status string) (*http.Response, error) {
	req := httptest.NewRequest(http.MethodPatch,
		"/sponsor/requests/"+requestID.String()+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return app.Test(req)
}

func TestUpdateSponsorRequestStatusApprovesPending(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newSponsorApp(gdb)
	requestID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE request_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "request_status", "request_urgency"}).
			AddRow(requestID.String(), requestModel.RequestPending, requestModel.UrgencyMedium))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "requests" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := patchStatus(app, requestID, requestModel.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			RequestStatus string `json:"request_status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, requestModel.RequestApproved, envelope.Data.RequestStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSponsorRequestStatusRefusesSettledRequests(t *testing.T) {
	gdb, mock := newMockDB(t)
	app := newSponsorApp(gdb)
	requestID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE request_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "request_status", "request_urgency"}).
			AddRow(requestID.String(), requestModel.RequestFulfilled, requestModel.UrgencyMedium))

	resp, err := patchStatus(app, requestID, requestModel.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// nothing was written
	assert.NoError(t, mock.ExpectationsWereMet())
}
