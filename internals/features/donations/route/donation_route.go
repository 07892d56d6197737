package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donationController "bookbridge_backend/internals/features/donations/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

func DonationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := donationController.NewDonationController(db)

	donations := api.Group("/donations")
	donations.Get("/", ctrl.GetDonations)

	protected := donations.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/", ctrl.CreateDonation)
	protected.Get("/my", ctrl.GetMyDonations)
	protected.Patch("/:id/status", ctrl.UpdateDonationStatus)

	donations.Get("/:id", ctrl.GetDonationByID)
}
