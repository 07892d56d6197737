package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookbridge_backend/internals/configs"
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

// A valid token must leave the full user identity in locals, name
// included, so downstream handlers never fall back to the email.
func TestAuthMiddlewareSetsUserLocals(t *testing.T) {
	gdb, mock := newMockDB(t)
	configs.JWTSecret = "unit-test-secret"
	userID := uuid.New()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(gdb), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":  c.Locals("user_name"),
			"email": c.Locals("user_email"),
		})
	})

	mock.ExpectQuery(`SELECT \* FROM "token_blacklist" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"token_blacklist_id"}))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name", "user_role", "user_email", "user_is_active"}).
			AddRow(userID.String(), "Jane Sponsor", "user", "jane@example.com", true))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Jane Sponsor", body["name"])
	assert.Equal(t, "jane@example.com", body["email"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
