package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookModel "bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/carts/dto"
	"bookbridge_backend/internals/features/carts/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

type CartController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db, Validate: validator.New()}
}

// getOrCreateCart returns the caller's cart, creating it on first use.
func (ctrl *CartController) getOrCreateCart(userID uuid.UUID) (*model.CartModel, error) {
	var cart model.CartModel
	err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_user_id"}},
		DoNothing: true,
	}).Create(&model.CartModel{CartUserID: userID}).Error
	if err != nil {
		return nil, err
	}
	if err := ctrl.DB.First(&cart, "cart_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// cartView shapes one cart for the storefront: prices converted to INR,
// images normalized, per-line and grand totals precomputed.
func (ctrl *CartController) cartView(cart *model.CartModel) (fiber.Map, error) {
	var items []model.CartItemModel
	if err := ctrl.DB.Preload("Book").
		Where("cart_item_cart_id = ?", cart.CartID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]fiber.Map, 0, len(items))
	grandTotal := 0
	for _, item := range items {
		if item.Book == nil {
			continue
		}
		price := item.Book.BookPrice
		if price <= 0 {
			price = bookModel.DefaultPrice(item.Book.BookType)
		}
		unitPrice := helper.ConvertToINR(price)
		lineTotal := unitPrice * item.CartItemQuantity
		grandTotal += lineTotal

		lines = append(lines, fiber.Map{
			"cart_item_id": item.CartItemID,
			"book_id":      item.Book.BookID,
			"title":        item.Book.BookTitle,
			"author":       item.Book.BookAuthor,
			"image":        helper.NormalizeImageURL(item.Book.BookImage),
			"quantity":     item.CartItemQuantity,
			"unit_price":   unitPrice,
			"line_total":   lineTotal,
			"currency":     "INR",
		})
	}

	return fiber.Map{
		"cart_id":  cart.CartID,
		"items":    lines,
		"total":    grandTotal,
		"currency": "INR",
	}, nil
}

// 🟢 GET /api/cart
func (ctrl *CartController) GetCart(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		log.Printf("[ERROR] get cart: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching cart")
	}
	view, err := ctrl.cartView(cart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching cart")
	}
	return helper.JsonOK(c, "ok", view)
}

// 🟢 POST /api/cart/items — add a book; re-adding merges quantities
func (ctrl *CartController) AddItem(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.AddCartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}
	bookID, _ := uuid.Parse(body.BookID)

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error adding to cart")
	}
	if !book.IsMarketplaceVisible() {
		return helper.JsonError(c, fiber.StatusConflict, "Book is not available for purchase")
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error adding to cart")
	}

	// Merge on the (cart, book) unique pair.
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_item_cart_id"}, {Name: "cart_item_book_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"cart_item_quantity": gorm.Expr("cart_items.cart_item_quantity + ?", quantity),
		}),
	}).Create(&model.CartItemModel{
		CartItemCartID:   cart.CartID,
		CartItemBookID:   bookID,
		CartItemQuantity: quantity,
	}).Error; err != nil {
		log.Printf("[ERROR] add cart item: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error adding to cart")
	}

	view, err := ctrl.cartView(cart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching cart")
	}
	return helper.JsonCreated(c, "Added to cart", view)
}

// 🟢 PUT /api/cart/items/:bookId — set a line's quantity
func (ctrl *CartController) UpdateItem(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("bookId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var body dto.UpdateCartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating cart")
	}

	res := ctrl.DB.Model(&model.CartItemModel{}).
		Where("cart_item_cart_id = ? AND cart_item_book_id = ?", cart.CartID, bookID).
		Update("cart_item_quantity", body.Quantity)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating cart")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Book is not in your cart")
	}

	view, err := ctrl.cartView(cart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching cart")
	}
	return helper.JsonUpdated(c, "Cart updated", view)
}

// 🟢 DELETE /api/cart/items/:bookId
func (ctrl *CartController) RemoveItem(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	bookID, err := uuid.Parse(c.Params("bookId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating cart")
	}

	res := ctrl.DB.
		Where("cart_item_cart_id = ? AND cart_item_book_id = ?", cart.CartID, bookID).
		Delete(&model.CartItemModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating cart")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Book is not in your cart")
	}

	view, err := ctrl.cartView(cart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching cart")
	}
	return helper.JsonDeleted(c, "Removed from cart", view)
}

// 🟢 DELETE /api/cart
func (ctrl *CartController) ClearCart(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error clearing cart")
	}
	if err := ctrl.DB.
		Where("cart_item_cart_id = ?", cart.CartID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error clearing cart")
	}
	return helper.JsonDeleted(c, "Cart cleared", fiber.Map{"cart_id": cart.CartID})
}

// 🟢 POST /api/cart/checkout — order placement is out of band; checkout
// validates the cart is non-empty, reports the total, and empties it.
func (ctrl *CartController) Checkout(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	cart, err := ctrl.getOrCreateCart(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error during checkout")
	}
	view, err := ctrl.cartView(cart)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error during checkout")
	}
	if items, ok := view["items"].([]fiber.Map); !ok || len(items) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cart is empty")
	}

	if err := ctrl.DB.
		Where("cart_item_cart_id = ?", cart.CartID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error during checkout")
	}

	return helper.JsonOK(c, "Checkout complete", fiber.Map{
		"cart_id":  cart.CartID,
		"total":    view["total"],
		"currency": "INR",
	})
}
