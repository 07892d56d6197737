package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
)

/* ===============================
   Enums
=================================*/

const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

const (
	TypeDonated = "donated" // given away for free
	TypeSold    = "sold"    // listed for sale
	TypeNew     = "new"     // catalog-sourced sale listing
)

const (
	CategoryFree    = "free"
	CategoryDonated = "donated"
	CategorySale    = "sale"
	CategoryRent    = "rent"
)

const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusFulfilled = "fulfilled"
)

const (
	MarketplaceActive   = "active"
	MarketplaceInactive = "inactive"
	MarketplacePending  = "pending"
)

/* ===============================
   Model
=================================*/

type BookModel struct {
	BookID          uuid.UUID `gorm:"column:book_id;type:uuid;default:gen_random_uuid();primaryKey" json:"book_id"`
	BookTitle       string    `gorm:"column:book_title;size:255;not null" json:"book_title"`
	BookAuthor      string    `gorm:"column:book_author;size:255;not null" json:"book_author"`
	BookGenre       string    `gorm:"column:book_genre;size:100;not null" json:"book_genre"`
	BookDescription string    `gorm:"column:book_description;type:text" json:"book_description"`
	BookCondition   string    `gorm:"column:book_condition;type:varchar(20);not null" json:"book_condition"`
	BookType        string    `gorm:"column:book_type;type:varchar(20);not null" json:"book_type"`
	BookCategory    string    `gorm:"column:book_category;type:varchar(20);not null" json:"book_category"`
	BookImage       string    `gorm:"column:book_image;type:text" json:"book_image"`
	BookISBN        string    `gorm:"column:book_isbn;size:20" json:"book_isbn"`

	// Sparse unique: only catalog-sourced books carry it.
	BookGoogleBooksID *string `gorm:"column:book_google_books_id;size:64;uniqueIndex" json:"book_google_books_id,omitempty"`

	BookOwnerID uuid.UUID            `gorm:"column:book_owner_id;type:uuid;not null;index" json:"book_owner_id"`
	Owner       *userModel.UserModel `gorm:"foreignKey:BookOwnerID;references:UserID" json:"owner,omitempty"`

	BookSellerEmail   string `gorm:"column:book_seller_email;size:255" json:"book_seller_email"`
	BookSellerPhone   string `gorm:"column:book_seller_phone;size:30" json:"book_seller_phone"`
	BookSellerAddress string `gorm:"column:book_seller_address;size:255" json:"book_seller_address"`

	BookPrice    float64 `gorm:"column:book_price;not null;default:0" json:"book_price"`
	BookCurrency string  `gorm:"column:book_currency;type:varchar(10);not null;default:'USD'" json:"book_currency"`

	BookStatus            string `gorm:"column:book_status;type:varchar(20);not null;default:'available';index" json:"book_status"`
	BookIsAvailable       bool   `gorm:"column:book_is_available;not null;default:true" json:"book_is_available"`
	BookMarketplaceStatus string `gorm:"column:book_marketplace_status;type:varchar(20);not null;default:'active'" json:"book_marketplace_status"`

	BookMatchedRequestID *uuid.UUID `gorm:"column:book_matched_request_id;type:uuid" json:"book_matched_request_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BookModel) TableName() string {
	return "books"
}

/* ===============================
   Derivation rules
=================================*/

// DefaultPrice is the type-based fallback when neither the catalog nor the
// caller supplied one.
func DefaultPrice(bookType string) float64 {
	switch bookType {
	case TypeSold:
		return 19.99
	case TypeNew:
		return 24.99
	default:
		return 0
	}
}

// DeriveCategory labels a book for the storefront from its type.
func DeriveCategory(bookType string) string {
	if bookType == TypeDonated {
		return CategoryFree
	}
	return CategorySale
}

// IsMarketplaceVisible is the single public-listing predicate: available,
// active, and either sold or donated.
func (b *BookModel) IsMarketplaceVisible() bool {
	return b.BookStatus == StatusAvailable &&
		b.BookMarketplaceStatus == MarketplaceActive &&
		(b.BookType == TypeSold || b.BookType == TypeDonated)
}

// IsSaleListing reports whether this book is sale inventory (a direct
// listing or a catalog-sourced one) rather than a donated copy.
func (b *BookModel) IsSaleListing() bool {
	return b.BookType == TypeSold || b.BookType == TypeNew
}

// ListingBookType maps the storefront filter vocabulary onto stored
// types: "sale" means the sold inventory, "free" the donated shelf.
// Anything else (including "all") applies no type filter.
func ListingBookType(listingType string) string {
	switch listingType {
	case "sale":
		return TypeSold
	case "free", TypeDonated:
		return TypeDonated
	default:
		return ""
	}
}

// TitleMatches reports whether this book's title contains the requested
// title as a case-insensitive substring (the matching rule).
func (b *BookModel) TitleMatches(requestedTitle string) bool {
	return strings.Contains(strings.ToLower(b.BookTitle), strings.ToLower(requestedTitle))
}

// CanTransitionStatus is the explicit owner-driven status graph. The source
// system accepted any value here (fulfilled→available included); that hole
// is closed: fulfilled is terminal.
func CanTransitionStatus(from, to string) bool {
	switch from {
	case StatusAvailable:
		return to == StatusReserved
	case StatusReserved:
		return to == StatusAvailable || to == StatusFulfilled
	default:
		return false
	}
}

// ApplyDonatedDefaults forces the canonical donated-marketplace-visible
// state. This is the donation repair step: idempotent, safe to re-run, and
// deliberately unconditional.
func (b *BookModel) ApplyDonatedDefaults() {
	b.BookType = TypeDonated
	b.BookCategory = CategoryFree
	b.BookStatus = StatusAvailable
	b.BookIsAvailable = true
	b.BookMarketplaceStatus = MarketplaceActive
	b.BookPrice = 0
}

/* ===============================
   Factories (derived defaults computed once, at construction)
=================================*/

type SellerContact struct {
	Email   string
	Phone   string
	Address string
}

// NewDonatedBook builds a donated book in its canonical state.
func NewDonatedBook(title, author, genre, isbn, description, condition, image string, owner uuid.UUID, contact SellerContact) BookModel {
	b := BookModel{
		BookTitle:       strings.TrimSpace(title),
		BookAuthor:      strings.TrimSpace(author),
		BookGenre:       strings.TrimSpace(genre),
		BookISBN:        strings.TrimSpace(isbn),
		BookDescription: strings.TrimSpace(description),
		BookCondition:   condition,
		BookImage:       helper.NormalizeImageURL(image),
		BookOwnerID:     owner,
		BookCurrency:    "USD",

		BookSellerEmail:   contact.Email,
		BookSellerPhone:   contact.Phone,
		BookSellerAddress: contact.Address,
	}
	b.ApplyDonatedDefaults()
	return b
}

// NewSoldBook builds a marketplace sale listing. Price and contact email
// are validated by the DTO before this runs.
func NewSoldBook(title, author, genre, description, condition, image string, price float64, owner uuid.UUID, contact SellerContact) BookModel {
	return BookModel{
		BookTitle:       strings.TrimSpace(title),
		BookAuthor:      strings.TrimSpace(author),
		BookGenre:       strings.TrimSpace(genre),
		BookDescription: strings.TrimSpace(description),
		BookCondition:   condition,
		BookType:        TypeSold,
		BookCategory:    DeriveCategory(TypeSold),
		BookImage:       helper.NormalizeImageURL(image),
		BookOwnerID:     owner,
		BookPrice:       price,
		BookCurrency:    "USD",

		BookStatus:            StatusAvailable,
		BookIsAvailable:       true,
		BookMarketplaceStatus: MarketplaceActive,

		BookSellerEmail:   contact.Email,
		BookSellerPhone:   contact.Phone,
		BookSellerAddress: contact.Address,
	}
}

// NewCatalogBook materializes a book from external catalog metadata. The
// price derivation order: catalog price, caller price, type default.
func NewCatalogBook(googleBooksID, title, author, genre, description, isbn, image, bookType, condition string,
	catalogPrice, callerPrice float64, owner uuid.UUID, contact SellerContact) BookModel {

	price := catalogPrice
	if price <= 0 {
		price = callerPrice
	}
	if price <= 0 {
		price = DefaultPrice(bookType)
	}

	return BookModel{
		BookTitle:         title,
		BookAuthor:        author,
		BookGenre:         genre,
		BookDescription:   description,
		BookISBN:          isbn,
		BookCondition:     condition,
		BookType:          bookType,
		BookCategory:      DeriveCategory(bookType),
		BookImage:         helper.NormalizeImageURL(image),
		BookGoogleBooksID: &googleBooksID,
		BookOwnerID:       owner,
		BookPrice:         price,
		BookCurrency:      "USD",

		BookStatus:            StatusAvailable,
		BookIsAvailable:       true,
		BookMarketplaceStatus: MarketplaceActive,

		BookSellerEmail:   contact.Email,
		BookSellerPhone:   contact.Phone,
		BookSellerAddress: contact.Address,
	}
}
