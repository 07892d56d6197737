package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	requestController "bookbridge_backend/internals/features/requests/controller"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

// RequestRoutes mounts /api/requests. Everything here needs a session;
// /dashboard and /my precede the :id wildcard.
func RequestRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := requestController.NewRequestController(db)

	requests := api.Group("/requests", authMiddleware.AuthMiddleware(db))
	requests.Post("/", ctrl.CreateRequest)
	requests.Get("/", ctrl.GetRequests)
	requests.Get("/dashboard", ctrl.GetDashboard)
	requests.Get("/my", ctrl.GetMyRequests)
	requests.Get("/:id", ctrl.GetRequestByID)
	requests.Post("/:id/match", ctrl.MatchRequest)
	requests.Post("/:id/fulfill", ctrl.FulfillRequest)
	requests.Patch("/:id/status", ctrl.UpdateRequestStatus)
	requests.Patch("/:id/priority", ctrl.UpdateRequestPriority)
}
