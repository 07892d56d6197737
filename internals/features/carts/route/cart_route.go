package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cartController "bookbridge_backend/internals/features/carts/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

func CartRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := cartController.NewCartController(db)

	cart := api.Group("/cart", authMiddleware.AuthMiddleware(db))
	cart.Get("/", ctrl.GetCart)
	cart.Delete("/", ctrl.ClearCart)
	cart.Post("/items", ctrl.AddItem)
	cart.Put("/items/:bookId", ctrl.UpdateItem)
	cart.Delete("/items/:bookId", ctrl.RemoveItem)
	cart.Post("/checkout", ctrl.Checkout)
}
