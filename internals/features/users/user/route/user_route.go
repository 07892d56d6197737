package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "bookbridge_backend/internals/features/users/user/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := api.Group("/users", authMiddleware.AuthMiddleware(db))
	users.Get("/profile", ctrl.GetProfile)
	users.Put("/profile", ctrl.UpdateProfile)
	users.Get("/stats", ctrl.GetStats)
	users.Get("/insights", ctrl.GetInsights)
}
