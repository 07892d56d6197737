package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	requestModel "bookbridge_backend/internals/features/requests/model"
	sponsorshipModel "bookbridge_backend/internals/features/sponsorships/model"
	"bookbridge_backend/internals/features/users/user/dto"
	"bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// 🟢 GET /api/users/profile
func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching profile")
	}
	return helper.JsonOK(c, "ok", user)
}

// 🟢 PUT /api/users/profile — whitelisted fields only
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.UpdateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["user_name"] = strings.TrimSpace(*body.Name)
	}
	if body.Phone != nil {
		updates["user_phone"] = strings.TrimSpace(*body.Phone)
	}
	if body.Location != nil {
		updates["user_location"] = strings.TrimSpace(*body.Location)
	}
	if len(updates) == 0 {
		return helper.JsonValidationError(c, map[string][]string{"body": {"nothing to update"}})
	}

	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating profile")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching profile")
	}
	return helper.JsonUpdated(c, "Profile updated", user)
}

// 🟢 GET /api/users/stats — lifetime counters
func (ctrl *UserController) GetStats(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching stats")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"donated":   user.UserDonatedCount,
		"sold":      user.UserSoldCount,
		"sponsored": user.UserSponsoredCount,
	})
}

// 🟢 GET /api/users/insights — live aggregates across the caller's
// requests, listings and sponsorships
func (ctrl *UserController) GetInsights(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var activeRequests, fulfilledRequests, activeListings int64
	if err := ctrl.DB.Model(&requestModel.RequestModel{}).
		Where("request_user_id = ? AND request_status IN ?", userID,
			[]string{requestModel.RequestPending, requestModel.RequestApproved, requestModel.RequestMatched}).
		Count(&activeRequests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building insights")
	}
	if err := ctrl.DB.Model(&requestModel.RequestModel{}).
		Where("request_user_id = ? AND request_status = ?", userID, requestModel.RequestFulfilled).
		Count(&fulfilledRequests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building insights")
	}
	if err := ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_owner_id = ? AND book_status = ? AND book_marketplace_status = ?",
			userID, bookModel.StatusAvailable, bookModel.MarketplaceActive).
		Count(&activeListings).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building insights")
	}

	var totalSponsored float64
	if err := ctrl.DB.Model(&sponsorshipModel.SponsorshipModel{}).
		Where("sponsorship_sponsor_id = ? AND sponsorship_status IN ?", userID,
			[]string{sponsorshipModel.SponsorshipCompleted, sponsorshipModel.SponsorshipApproved}).
		Select("COALESCE(SUM(sponsorship_amount), 0)").
		Scan(&totalSponsored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building insights")
	}

	type genreCount struct {
		Genre string `json:"genre"`
		Count int64  `json:"count"`
	}
	var genres []genreCount
	if err := ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_owner_id = ?", userID).
		Select("book_genre AS genre, COUNT(*) AS count").
		Group("book_genre").
		Order("count DESC").
		Scan(&genres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building insights")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"active_requests":    activeRequests,
		"fulfilled_requests": fulfilledRequests,
		"active_listings":    activeListings,
		"total_sponsored":    totalSponsored,
		"genre_distribution": genres,
	})
}
