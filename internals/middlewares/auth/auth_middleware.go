package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookbridge_backend/internals/configs"
	authModel "bookbridge_backend/internals/features/users/auth/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
)

// Every auth failure collapses into this one message so a caller cannot
// probe which check rejected the token.
const genericAuthMessage = "Please authenticate."

// Paths that bypass auth (payment gateway webhook).
var skipPaths = map[string]struct{}{
	"/api/sponsor/notification": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return reject(c, err)
		}

		// Blacklist check (once per request)
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklistModel
			if err := db.Where("token_blacklist_token = ? AND deleted_at IS NULL", tokenString).
				First(&existing).Error; err == nil {
				return reject(c, errors.New("token is blacklisted"))
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[ERROR] blacklist lookup failed: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			return reject(c, err)
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return reject(c, err)
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return reject(c, err)
		}

		// The user behind the token must still exist and be active.
		var user userModel.UserModel
		if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reject(c, errors.New("user not found"))
			}
			log.Printf("[ERROR] user lookup failed: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.UserIsActive {
			return reject(c, errors.New("user deactivated"))
		}

		c.Locals("user_id", user.UserID.String())
		c.Locals("user_name", user.UserName)
		c.Locals("user_role", user.UserRole)
		c.Locals("user_email", user.UserEmail)
		c.Locals("user_phone", user.UserPhone)
		c.Locals("user_location", user.UserLocation)
		c.Locals("raw_token", tokenString)

		return c.Next()
	}
}

func reject(c *fiber.Ctx, cause error) error {
	log.Printf("[WARN] auth rejected %s %s: %v", c.Method(), c.Path(), cause)
	return helper.JsonError(c, fiber.StatusUnauthorized, genericAuthMessage)
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, prefix) {
		if tok := strings.TrimSpace(auth[len(prefix):]); tok != "" {
			return tok, nil
		}
	}
	// Cookie fallback for browser clients
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, nil
	}
	return "", errors.New("no token provided")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("token has no exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		// legacy tokens carried "id"
		sub, _ = claims["id"].(string)
	}
	return uuid.Parse(sub)
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == "admin"
}

// UserID parses the authenticated caller's id out of the request context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}
