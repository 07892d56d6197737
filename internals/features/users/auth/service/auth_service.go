package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookbridge_backend/internals/configs"
	authModel "bookbridge_backend/internals/features/users/auth/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
)

var validate = validator.New()

/* ==========================
   REGISTER
========================== */

type registerInput struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:     input.UserName,
		UserEmail:    strings.ToLower(strings.TrimSpace(input.Email)),
		UserPassword: string(hashed),
		UserPhone:    input.Phone,
		UserLocation: input.Location,
		UserRole:     "user",
		UserIsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	accessToken, err := IssueTokens(c, db, user)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Account created", fiber.Map{
		"access_token": accessToken,
		"user":         user,
	})
}

/* ==========================
   LOGIN
========================== */

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "user_email = ?", strings.ToLower(strings.TrimSpace(input.Email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a wrong password; do not leak which one failed
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(input.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account deactivated. Contact support.")
	}

	accessToken, err := IssueTokens(c, db, user)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Logged in", fiber.Map{
		"access_token": accessToken,
		"user":         user,
	})
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	var user userModel.UserModel
	err = db.First(&user, "user_google_id = ?", googleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = userModel.UserModel{
			UserName:     name,
			UserEmail:    strings.ToLower(email),
			UserPassword: generateDummyPassword(),
			UserGoogleID: &googleID,
			UserRole:     "user",
			UserIsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account deactivated. Contact support.")
	}

	accessToken, err := IssueTokens(c, db, user)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Logged in", fiber.Map{
		"access_token": accessToken,
		"user":         user,
	})
}

// generateDummyPassword fills the NOT NULL password column for
// Google-provisioned accounts. It can never be matched by bcrypt compare.
func generateDummyPassword() string {
	return "google-oauth:" + uuid.New().String()
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	// Blacklist the access token until its natural expiry.
	expiresAt := time.Now().Add(accessTTLDefault)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiresAt = time.Unix(int64(exp), 0)
		}
	}
	if err := db.Create(&authModel.TokenBlacklistModel{
		TokenBlacklistToken:     raw,
		TokenBlacklistExpiresAt: expiresAt,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	// Revoke the refresh token behind this session, if present.
	if refreshCookie := helper.GetRefreshTokenFromCookie(c); refreshCookie != "" {
		if secret, err := getRefreshSecret(); err == nil {
			now := time.Now()
			db.Model(&authModel.RefreshTokenModel{}).
				Where("refresh_token_hash = ?", computeRefreshHash(refreshCookie, secret)).
				Update("refresh_token_revoked_at", &now)
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}
