package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "bookbridge_backend/internals/features/books/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

// BookRoutes mounts /api/books. Static segments before the :id wildcard.
func BookRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := bookController.NewBookController(db)

	books := api.Group("/books")

	// Public reads
	books.Get("/", ctrl.GetBooks)
	books.Get("/isbn/:isbn", ctrl.LookupISBN)

	// Authenticated
	protected := books.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/", ctrl.CreateBook)
	protected.Post("/donate", ctrl.DonateBook)
	protected.Post("/google", ctrl.CreateOrGetGoogleBook)
	protected.Get("/donated/my", ctrl.GetMyDonatedBooks)
	protected.Put("/:id/status", ctrl.UpdateBookStatus)

	// Wildcard last so it never shadows the static paths above.
	books.Get("/:id", ctrl.GetBookByID)
}
