package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/marketplace/dto"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

type MarketplaceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMarketplaceController(db *gorm.DB) *MarketplaceController {
	return &MarketplaceController{DB: db, Validate: validator.New()}
}

// visibleListings is the shared browse predicate: available, active, and
// a sellable type. Matches BookModel.IsMarketplaceVisible.
func (ctrl *MarketplaceController) visibleListings() *gorm.DB {
	return ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_status = ?", bookModel.StatusAvailable).
		Where("book_marketplace_status = ?", bookModel.MarketplaceActive).
		Where("book_type IN ?", []string{bookModel.TypeSold, bookModel.TypeDonated})
}

// 🟢 POST /api/marketplace/sell
func (ctrl *MarketplaceController) SellBook(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.SellBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	imagePath := ""
	if fileHeader, err := c.FormFile("image"); err == nil {
		imagePath, err = helper.SaveImageAsWebp("marketplace", fileHeader)
		if err != nil {
			log.Printf("[ERROR] save listing image: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image")
		}
	}

	book := bookModel.NewSoldBook(
		body.Title, body.Author, body.Genre, body.Description,
		body.Condition, imagePath, body.Price, userID,
		bookModel.SellerContact{Email: body.ContactEmail, Phone: body.ContactPhone, Address: body.ContactAddress},
	)

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&book).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			UpdateColumn("user_sold_count", gorm.Expr("user_sold_count + 1")).Error
	}); err != nil {
		log.Printf("[ERROR] create listing: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating listing")
	}

	return helper.JsonCreated(c, "Book listed for sale", book)
}

// 🟢 GET /api/marketplace — browse listings, newest first
func (ctrl *MarketplaceController) GetListings(c *fiber.Ctx) error {
	q := ctrl.visibleListings().Preload("Owner")

	if genre := c.Query("genre"); genre != "" {
		q = q.Where("book_genre = ?", genre)
	}
	if condition := c.Query("condition"); condition != "" {
		q = q.Where("book_condition = ?", condition)
	}
	if mapped := bookModel.ListingBookType(c.Query("listingType")); mapped != "" {
		q = q.Where("book_type = ?", mapped)
	}
	if raw := c.Query("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("book_price >= ?", min)
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("book_price <= ?", max)
		}
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("book_title ILIKE ? OR book_author ILIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching listings")
	}

	var books []bookModel.BookModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching listings")
	}
	return helper.JsonList(c, "ok", books, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/marketplace/my — caller's listings regardless of visibility
func (ctrl *MarketplaceController) GetMyListings(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var books []bookModel.BookModel
	if err := ctrl.DB.
		Where("book_owner_id = ? AND book_type IN ?", userID, []string{bookModel.TypeSold, bookModel.TypeNew}).
		Order("created_at DESC").
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching your listings")
	}
	return helper.JsonList(c, "ok", books, nil)
}

// 🟢 GET /api/marketplace/:id
func (ctrl *MarketplaceController) GetListingByID(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid listing id")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.Preload("Owner").First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching listing")
	}
	if !book.IsMarketplaceVisible() {
		return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
	}
	return helper.JsonOK(c, "ok", book)
}

// 🟢 GET /api/marketplace/:id/contact — seller contact, buyers only see
// this when logged in
func (ctrl *MarketplaceController) GetSellerContact(c *fiber.Ctx) error {
	if _, err := authMiddleware.UserID(c); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid listing id")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching listing")
	}
	if !book.IsMarketplaceVisible() {
		return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"email":   book.BookSellerEmail,
		"phone":   book.BookSellerPhone,
		"address": book.BookSellerAddress,
	})
}

// 🟢 PUT /api/marketplace/:id — price/description only, while available
func (ctrl *MarketplaceController) UpdateListing(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid listing id")
	}

	var body dto.UpdateListingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.Price == nil && body.Description == nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {"nothing to update"}})
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ? AND book_owner_id = ?", bookID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating listing")
	}
	if book.BookStatus != bookModel.StatusAvailable {
		return helper.JsonError(c, fiber.StatusConflict, "Only available listings can be edited")
	}

	updates := map[string]any{}
	if body.Price != nil {
		updates["book_price"] = *body.Price
	}
	if body.Description != nil {
		updates["book_description"] = strings.TrimSpace(*body.Description)
	}
	if err := ctrl.DB.Model(&book).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating listing")
	}
	return helper.JsonUpdated(c, "Listing updated", book)
}

// 🟢 DELETE /api/marketplace/:id — hard-delete a sale listing while it is
// still available; the sold counter goes back down so stats stay honest.
// Donated copies never leave through here.
func (ctrl *MarketplaceController) DeleteListing(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid listing id")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ? AND book_owner_id = ?", bookID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Listing not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error removing listing")
	}
	if !book.IsSaleListing() {
		return helper.JsonError(c, fiber.StatusConflict, "Only sale listings can be removed")
	}
	if book.BookStatus != bookModel.StatusAvailable {
		return helper.JsonError(c, fiber.StatusConflict, "Only available listings can be removed")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&book).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ? AND user_sold_count > 0", userID).
			UpdateColumn("user_sold_count", gorm.Expr("user_sold_count - 1")).Error
	}); err != nil {
		log.Printf("[ERROR] delete listing: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error removing listing")
	}

	return helper.JsonDeleted(c, "Listing removed", fiber.Map{"book_id": bookID})
}
