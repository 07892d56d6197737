package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

// The dashboard reports the caller's own books and requests; only the
// donor count spans the community.
func TestGetDashboardScopedToCaller(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctrl := NewRequestController(gdb)
	userID := uuid.New()

	app := fiber.New()
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return ctrl.GetDashboard(c)
	})

	mock.ExpectQuery(`SELECT count\(\*\) FROM "books" WHERE book_type = \$1 AND book_owner_id = \$2`).
		WillReturnRows(countRows(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "books" WHERE book_type IN \(\$1,\$2\) AND book_owner_id = \$3`).
		WillReturnRows(countRows(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "requests" WHERE request_status = \$1 AND request_user_id = \$2`).
		WillReturnRows(countRows(3))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\("book_owner_id"\)\) FROM "books" WHERE book_type = \$1`).
		WillReturnRows(countRows(7))
	mock.ExpectQuery(`SELECT \* FROM "books" WHERE book_owner_id = \$1 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.EqualValues(t, 2, envelope.Data["donated_books"])
	assert.EqualValues(t, 1, envelope.Data["sold_books"])
	assert.EqualValues(t, 3, envelope.Data["pending_requests"])
	assert.EqualValues(t, 7, envelope.Data["total_donors"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
