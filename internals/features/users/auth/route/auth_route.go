package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "bookbridge_backend/internals/features/users/auth/controller"
	"bookbridge_backend/internals/middlewares"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /api/auth. Register/login carry their own stricter
// rate limiters.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctrl.Logout)
	auth.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
}
