package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookbridge_backend/internals/features/books/dto"
	"bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/books/service"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

type BookController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db, Validate: validator.New()}
}

// sellerContactFromRequest falls back to the authenticated user's own
// contact details when the form leaves them blank.
func sellerContactFromRequest(c *fiber.Ctx, email, phone, address string) model.SellerContact {
	if email == "" {
		email, _ = c.Locals("user_email").(string)
	}
	if phone == "" {
		phone, _ = c.Locals("user_phone").(string)
	}
	if address == "" {
		address, _ = c.Locals("user_location").(string)
	}
	return model.SellerContact{Email: email, Phone: phone, Address: address}
}

// 🟢 POST /api/books — create a donated book (plain JSON, no upload)
func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.CreateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	book := model.NewDonatedBook(
		body.Title, body.Author, body.Genre, body.ISBN, body.Description,
		body.Condition, "", userID,
		sellerContactFromRequest(c, body.ContactEmail, body.ContactPhone, body.ContactAddress),
	)
	if err := ctrl.DB.Create(&book).Error; err != nil {
		log.Printf("[ERROR] create book: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating book")
	}

	return helper.JsonCreated(c, "Book created", book)
}

// 🟢 POST /api/books/donate — multipart donate, one cover image required.
// Side effect: the owner's donated counter goes up.
func (ctrl *BookController) DonateBook(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.DonateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"image": {"is required"}})
	}
	imagePath, err := helper.SaveImageAsWebp("books", fileHeader)
	if err != nil {
		log.Printf("[ERROR] save book image: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image")
	}

	book := model.NewDonatedBook(
		body.Title, body.Author, body.Genre, body.ISBN, body.Description,
		body.Condition, imagePath, userID,
		sellerContactFromRequest(c, body.ContactEmail, body.ContactPhone, body.ContactAddress),
	)

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&book).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", userID).
			UpdateColumn("user_donated_count", gorm.Expr("user_donated_count + 1")).Error
	}); err != nil {
		log.Printf("[ERROR] donate book: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error donating book")
	}

	return helper.JsonCreated(c, "Book donated", book)
}

// 🟢 GET /api/books — available books, optional genre/type/search filters
func (ctrl *BookController) GetBooks(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.BookModel{}).
		Where("book_status = ?", model.StatusAvailable).
		Preload("Owner")

	if genre := c.Query("genre"); genre != "" {
		q = q.Where("book_genre = ?", genre)
	}
	if bookType := c.Query("type"); bookType != "" {
		q = q.Where("book_type = ?", bookType)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("book_title ILIKE ? OR book_author ILIKE ? OR book_genre ILIKE ?", like, like, like)
	}

	var books []model.BookModel
	if err := q.Order("created_at DESC").Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching books")
	}
	return helper.JsonList(c, "ok", books, nil)
}

// 🟢 GET /api/books/:id
func (ctrl *BookController) GetBookByID(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var book model.BookModel
	if err := ctrl.DB.Preload("Owner").First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching book details")
	}
	return helper.JsonOK(c, "ok", book)
}

// 🟢 GET /api/books/donated/my — caller's donated books, newest first
func (ctrl *BookController) GetMyDonatedBooks(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var books []model.BookModel
	if err := ctrl.DB.
		Where("book_owner_id = ? AND book_type = ?", userID, model.TypeDonated).
		Order("created_at DESC").
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching donated books")
	}
	return helper.JsonList(c, "ok", books, nil)
}

// 🟢 PUT /api/books/:id/status — owner-only, transition graph enforced
func (ctrl *BookController) UpdateBookStatus(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var body dto.UpdateBookStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var book model.BookModel
	if err := ctrl.DB.First(&book, "book_id = ? AND book_owner_id = ?", bookID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating book status")
	}

	if book.BookStatus != body.Status && !model.CanTransitionStatus(book.BookStatus, body.Status) {
		return helper.JsonError(c, fiber.StatusConflict,
			"Cannot move book from '"+book.BookStatus+"' to '"+body.Status+"'")
	}

	book.BookStatus = body.Status
	if err := ctrl.DB.Save(&book).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating book status")
	}
	return helper.JsonUpdated(c, "Status updated", book)
}

// 🟢 POST /api/books/google — create-or-get by Google Books id.
// Idempotent per external catalog id.
func (ctrl *BookController) CreateOrGetGoogleBook(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.GoogleBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	// Already materialized?
	var existing model.BookModel
	err = ctrl.DB.First(&existing, "book_google_books_id = ?", body.GoogleBooksID).Error
	if err == nil {
		return helper.JsonOK(c, "ok", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error looking up book")
	}

	vol, err := service.FetchGoogleVolume(c.UserContext(), body.GoogleBooksID)
	if err != nil {
		log.Printf("[WARN] google books fetch: %v", err)
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found in Google Books API")
	}

	bookType := body.Type
	if bookType == "" {
		bookType = model.TypeSold
	}
	condition := body.Condition
	if condition == "" {
		condition = model.ConditionNew
	}

	book := model.NewCatalogBook(
		body.GoogleBooksID, vol.Title, vol.Author, vol.Genre, vol.Description, vol.ISBN, vol.Image,
		bookType, condition, vol.Price, body.Price, userID,
		sellerContactFromRequest(c, body.ContactEmail, body.ContactPhone, body.ContactAddress),
	)
	if err := ctrl.DB.Create(&book).Error; err != nil {
		// Lost a race on the unique catalog id: return the winner's row.
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			if err := ctrl.DB.First(&existing, "book_google_books_id = ?", body.GoogleBooksID).Error; err == nil {
				return helper.JsonOK(c, "ok", existing)
			}
		}
		log.Printf("[ERROR] create google book: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating book from Google Books")
	}

	return helper.JsonOK(c, "ok", book)
}

// 🟢 GET /api/books/isbn/:isbn — OpenLibrary prefill for manual entry.
// Best effort: a miss is a 404 the client treats as "type it yourself".
func (ctrl *BookController) LookupISBN(c *fiber.Ctx) error {
	isbn := strings.TrimSpace(c.Params("isbn"))
	if isbn == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "ISBN is required")
	}

	vol, err := service.LookupISBN(c.UserContext(), isbn)
	if err != nil {
		log.Printf("[WARN] openlibrary lookup: %v", err)
		return helper.JsonError(c, fiber.StatusNotFound, "No catalog data for this ISBN")
	}
	return helper.JsonOK(c, "ok", vol)
}
