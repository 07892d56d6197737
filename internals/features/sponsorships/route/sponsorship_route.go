package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sponsorshipController "bookbridge_backend/internals/features/sponsorships/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

// SponsorshipRoutes mounts /api/sponsor. The gateway webhook stays
// outside auth; the auth middleware also skips it by path.
func SponsorshipRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := sponsorshipController.NewSponsorshipController(db)

	sponsor := api.Group("/sponsor")
	sponsor.Post("/notification", ctrl.HandleNotification)

	protected := sponsor.Group("", authMiddleware.AuthMiddleware(db))
	protected.Get("/requests", ctrl.GetSponsorableRequests)
	protected.Get("/requests/:id", ctrl.GetSponsorRequestByID)
	protected.Patch("/requests/:id/status", ctrl.UpdateSponsorRequestStatus)
	protected.Get("/history", ctrl.GetHistory)
	protected.Post("/:requestId/pay", ctrl.PaySponsorship)
	protected.Post("/:requestId/snap-token", ctrl.CreateSnapToken)
	protected.Patch("/:id/approve", ctrl.ApproveSponsorship)
	protected.Patch("/:id/reject", ctrl.RejectSponsorship)
	protected.Get("/:id", ctrl.GetSponsorshipByID)
}
