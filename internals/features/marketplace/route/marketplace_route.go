package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	marketplaceController "bookbridge_backend/internals/features/marketplace/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

// MarketplaceRoutes mounts /api/marketplace. /my is registered before the
// :id wildcard so it never resolves as a listing id.
func MarketplaceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := marketplaceController.NewMarketplaceController(db)

	mk := api.Group("/marketplace")
	mk.Get("/", ctrl.GetListings)

	protected := mk.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/sell", ctrl.SellBook)
	protected.Get("/my", ctrl.GetMyListings)
	protected.Get("/:id/contact", ctrl.GetSellerContact)
	protected.Put("/:id", ctrl.UpdateListing)
	protected.Delete("/:id", ctrl.DeleteListing)

	mk.Get("/:id", ctrl.GetListingByID)
}
