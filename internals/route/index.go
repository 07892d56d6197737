package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "bookbridge_backend/internals/features/books/route"
	cartRoute "bookbridge_backend/internals/features/carts/route"
	donationRoute "bookbridge_backend/internals/features/donations/route"
	marketplaceRoute "bookbridge_backend/internals/features/marketplace/route"
	requestRoute "bookbridge_backend/internals/features/requests/route"
	sponsorshipRoute "bookbridge_backend/internals/features/sponsorships/route"
	authRoute "bookbridge_backend/internals/features/users/auth/route"
	userRoute "bookbridge_backend/internals/features/users/user/route"
)

// SetupRoutes mounts every feature under /api. Each feature decides its
// own auth boundary inside its route file.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)
	bookRoute.BookRoutes(api, db)
	marketplaceRoute.MarketplaceRoutes(api, db)
	donationRoute.DonationRoutes(api, db)
	requestRoute.RequestRoutes(api, db)
	sponsorshipRoute.SponsorshipRoutes(api, db)
	cartRoute.CartRoutes(api, db)
}
