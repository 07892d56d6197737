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

	bookModel "bookbridge_backend/internals/features/books/model"
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

// Only sale inventory can be hard-deleted; a donated copy stays put even
// for its owner.
func TestDeleteListingRefusesDonatedBooks(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctrl := NewMarketplaceController(gdb)
	userID := uuid.New()
	bookID := uuid.New()

	app := fiber.New()
	app.Delete("/marketplace/:id", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return ctrl.DeleteListing(c)
	})

	mock.ExpectQuery(`SELECT \* FROM "books" WHERE book_id = \$1 AND book_owner_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"book_id", "book_owner_id", "book_type", "book_status"}).
			AddRow(bookID.String(), userID.String(), bookModel.TypeDonated, bookModel.StatusAvailable))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/marketplace/"+bookID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Only sale listings can be removed", envelope.Message)

	// no delete, no counter update
	assert.NoError(t, mock.ExpectationsWereMet())
}
