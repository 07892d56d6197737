package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/donations/dto"
	"bookbridge_backend/internals/features/donations/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

const maxDonationImages = 5

type DonationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDonationController(db *gorm.DB) *DonationController {
	return &DonationController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/donations — donate an existing book or a brand new one.
// Whatever state the book row was in, it leaves here donated, free and
// visible: the repair step is unconditional.
func (ctrl *DonationController) CreateDonation(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.CreateDonationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	// Photos first, outside the transaction: disk writes don't roll back.
	var images pq.StringArray
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxDonationImages {
			return helper.JsonValidationError(c, map[string][]string{
				"images": {"at most 5 images are allowed"},
			})
		}
		for _, fh := range files {
			path, err := helper.SaveImageAsWebp("donations", fh)
			if err != nil {
				log.Printf("[ERROR] save donation image: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image")
			}
			images = append(images, path)
		}
	}

	var donation model.DonationModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel

		contact := bookModel.SellerContact{
			Email:   body.ContactEmail,
			Phone:   body.ContactPhone,
			Address: body.ContactAddress,
		}

		if body.BookID != "" {
			bookID, _ := uuid.Parse(body.BookID)
			if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
				return err
			}
		} else {
			image := ""
			if len(images) > 0 {
				image = images[0]
			}
			book = bookModel.NewDonatedBook(
				body.Title, body.Author, body.Genre, body.ISBN, body.Description,
				body.Condition, image, userID, contact,
			)
		}

		book.ApplyDonatedDefaults()
		if err := tx.Save(&book).Error; err != nil {
			return err
		}

		donation = model.DonationModel{
			DonationUserID:      userID,
			DonationBookID:      book.BookID,
			DonationQuantity:    body.Quantity,
			DonationCondition:   body.Condition,
			DonationDescription: body.Description,
			DonationType:        body.DonationType,
			DonationImages:      images,
		}
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			UpdateColumn("user_donated_count", gorm.Expr("user_donated_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		log.Printf("[ERROR] create donation: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating donation")
	}

	if err := ctrl.DB.Preload("Donor").Preload("Book").
		First(&donation, "donation_id = ?", donation.DonationID).Error; err != nil {
		log.Printf("[WARN] reload donation: %v", err)
	}
	return helper.JsonCreated(c, "Donation recorded", donation)
}

// 🟢 GET /api/donations — recent donations, donor and book populated
func (ctrl *DonationController) GetDonations(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.DonationModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching donations")
	}

	var donations []model.DonationModel
	if err := ctrl.DB.Preload("Donor").Preload("Book").
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&donations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching donations")
	}
	return helper.JsonList(c, "ok", donations, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/donations/my
func (ctrl *DonationController) GetMyDonations(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var donations []model.DonationModel
	if err := ctrl.DB.Preload("Book").
		Where("donation_user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching donations")
	}
	return helper.JsonList(c, "ok", donations, nil)
}

// 🟢 PATCH /api/donations/:id/status — admin bookkeeping only; the book
// row is untouched (the repair step owns book state)
func (ctrl *DonationController) UpdateDonationStatus(c *fiber.Ctx) error {
	if !authMiddleware.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Admin access required")
	}
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	var body dto.UpdateDonationStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.Model(&model.DonationModel{}).
		Where("donation_id = ?", donationID).
		Update("donation_status", body.Status)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating donation")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Donation not found")
	}
	return helper.JsonUpdated(c, "Donation status updated", fiber.Map{
		"donation_id": donationID,
		"status":      body.Status,
	})
}

// 🟢 GET /api/donations/:id
func (ctrl *DonationController) GetDonationByID(c *fiber.Ctx) error {
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	var donation model.DonationModel
	if err := ctrl.DB.Preload("Donor").Preload("Book").
		First(&donation, "donation_id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Donation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching donation")
	}
	return helper.JsonOK(c, "ok", donation)
}
