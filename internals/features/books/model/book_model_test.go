package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	helper "bookbridge_backend/internals/helpers"
)

func TestDefaultPrice(t *testing.T) {
	assert.Equal(t, 19.99, DefaultPrice(TypeSold))
	assert.Equal(t, 24.99, DefaultPrice(TypeNew))
	assert.Equal(t, 0.0, DefaultPrice(TypeDonated))
	assert.Equal(t, 0.0, DefaultPrice("something-else"))
}

func TestDeriveCategory(t *testing.T) {
	assert.Equal(t, CategoryFree, DeriveCategory(TypeDonated))
	assert.Equal(t, CategorySale, DeriveCategory(TypeSold))
	assert.Equal(t, CategorySale, DeriveCategory(TypeNew))
}

func TestListingBookType(t *testing.T) {
	assert.Equal(t, TypeSold, ListingBookType("sale"))
	assert.Equal(t, TypeDonated, ListingBookType("free"))
	assert.Equal(t, TypeDonated, ListingBookType("donated"))

	// "all", blank and unmapped values leave the browse set untouched
	assert.Equal(t, "", ListingBookType("all"))
	assert.Equal(t, "", ListingBookType(""))
	assert.Equal(t, "", ListingBookType("rent"))
}

func TestIsSaleListing(t *testing.T) {
	assert.True(t, (&BookModel{BookType: TypeSold}).IsSaleListing())
	assert.True(t, (&BookModel{BookType: TypeNew}).IsSaleListing())
	assert.False(t, (&BookModel{BookType: TypeDonated}).IsSaleListing())
}

func TestIsMarketplaceVisible(t *testing.T) {
	base := BookModel{
		BookStatus:            StatusAvailable,
		BookMarketplaceStatus: MarketplaceActive,
		BookType:              TypeSold,
	}
	assert.True(t, base.IsMarketplaceVisible())

	donated := base
	donated.BookType = TypeDonated
	assert.True(t, donated.IsMarketplaceVisible())

	reserved := base
	reserved.BookStatus = StatusReserved
	assert.False(t, reserved.IsMarketplaceVisible())

	inactive := base
	inactive.BookMarketplaceStatus = MarketplaceInactive
	assert.False(t, inactive.IsMarketplaceVisible())

	catalogOnly := base
	catalogOnly.BookType = TypeNew
	assert.False(t, catalogOnly.IsMarketplaceVisible())
}

func TestTitleMatches(t *testing.T) {
	b := BookModel{BookTitle: "The Pragmatic Programmer"}

	assert.True(t, b.TitleMatches("pragmatic"))
	assert.True(t, b.TitleMatches("THE PRAGMATIC PROGRAMMER"))
	assert.True(t, b.TitleMatches("Programmer"))
	assert.False(t, b.TitleMatches("clean code"))
}

func TestCanTransitionStatus(t *testing.T) {
	assert.True(t, CanTransitionStatus(StatusAvailable, StatusReserved))
	assert.True(t, CanTransitionStatus(StatusReserved, StatusAvailable))
	assert.True(t, CanTransitionStatus(StatusReserved, StatusFulfilled))

	// available cannot jump straight to fulfilled
	assert.False(t, CanTransitionStatus(StatusAvailable, StatusFulfilled))
	// fulfilled is terminal
	assert.False(t, CanTransitionStatus(StatusFulfilled, StatusAvailable))
	assert.False(t, CanTransitionStatus(StatusFulfilled, StatusReserved))
	assert.False(t, CanTransitionStatus("bogus", StatusAvailable))
}

func TestApplyDonatedDefaultsIsIdempotent(t *testing.T) {
	b := BookModel{
		BookType:              TypeSold,
		BookCategory:          CategorySale,
		BookStatus:            StatusReserved,
		BookIsAvailable:       false,
		BookMarketplaceStatus: MarketplaceInactive,
		BookPrice:             42.50,
	}

	b.ApplyDonatedDefaults()
	b.ApplyDonatedDefaults()

	assert.Equal(t, TypeDonated, b.BookType)
	assert.Equal(t, CategoryFree, b.BookCategory)
	assert.Equal(t, StatusAvailable, b.BookStatus)
	assert.True(t, b.BookIsAvailable)
	assert.Equal(t, MarketplaceActive, b.BookMarketplaceStatus)
	assert.Equal(t, 0.0, b.BookPrice)
}

func TestNewDonatedBook(t *testing.T) {
	owner := uuid.New()
	b := NewDonatedBook("  Dune ", "Frank Herbert", "Sci-Fi", "", "desc", ConditionGood, "", owner,
		SellerContact{Email: "donor@example.com"})

	assert.Equal(t, "Dune", b.BookTitle)
	assert.Equal(t, TypeDonated, b.BookType)
	assert.Equal(t, CategoryFree, b.BookCategory)
	assert.Equal(t, StatusAvailable, b.BookStatus)
	assert.Equal(t, 0.0, b.BookPrice)
	assert.Equal(t, owner, b.BookOwnerID)
	assert.Equal(t, helper.PlaceholderImageURL, b.BookImage)
	assert.Equal(t, "donor@example.com", b.BookSellerEmail)
}

func TestNewCatalogBookPriceDerivation(t *testing.T) {
	owner := uuid.New()

	// catalog price wins
	b := NewCatalogBook("gid1", "T", "A", "G", "", "", "", TypeSold, ConditionNew, 12.5, 9.99, owner, SellerContact{})
	assert.Equal(t, 12.5, b.BookPrice)

	// caller price next
	b = NewCatalogBook("gid2", "T", "A", "G", "", "", "", TypeSold, ConditionNew, 0, 9.99, owner, SellerContact{})
	assert.Equal(t, 9.99, b.BookPrice)

	// type default last
	b = NewCatalogBook("gid3", "T", "A", "G", "", "", "", TypeNew, ConditionNew, 0, 0, owner, SellerContact{})
	assert.Equal(t, 24.99, b.BookPrice)

	gid := b.BookGoogleBooksID
	assert.NotNil(t, gid)
	assert.Equal(t, "gid3", *gid)
	assert.Equal(t, CategorySale, b.BookCategory)
}
