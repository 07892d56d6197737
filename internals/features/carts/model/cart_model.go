package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "bookbridge_backend/internals/features/books/model"
)

// CartModel: one cart per user, created lazily on first touch.
type CartModel struct {
	CartID     uuid.UUID `gorm:"column:cart_id;type:uuid;default:gen_random_uuid();primaryKey" json:"cart_id"`
	CartUserID uuid.UUID `gorm:"column:cart_user_id;type:uuid;not null;uniqueIndex" json:"cart_user_id"`

	Items []CartItemModel `gorm:"foreignKey:CartItemCartID;references:CartID" json:"items"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel: one line per book per cart; re-adding a book merges
// into the existing line's quantity.
type CartItemModel struct {
	CartItemID       uuid.UUID `gorm:"column:cart_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"cart_item_id"`
	CartItemCartID   uuid.UUID `gorm:"column:cart_item_cart_id;type:uuid;not null;uniqueIndex:uq_cart_book;index" json:"cart_item_cart_id"`
	CartItemBookID   uuid.UUID `gorm:"column:cart_item_book_id;type:uuid;not null;uniqueIndex:uq_cart_book" json:"cart_item_book_id"`
	CartItemQuantity int       `gorm:"column:cart_item_quantity;not null;default:1" json:"cart_item_quantity"`

	Book *bookModel.BookModel `gorm:"foreignKey:CartItemBookID;references:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}
