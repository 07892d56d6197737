package dto

// SellBookRequest: multipart sell form. Cover image is optional; without
// one the listing falls back to the placeholder.
type SellBookRequest struct {
	Title          string  `form:"title" validate:"required"`
	Author         string  `form:"author" validate:"required"`
	Genre          string  `form:"genre" validate:"required"`
	Condition      string  `form:"condition" validate:"required,oneof=new like-new good fair poor"`
	Description    string  `form:"description"`
	Price          float64 `form:"price" validate:"required,gt=0"`
	ContactEmail   string  `form:"contactEmail" validate:"required,email"`
	ContactPhone   string  `form:"contactPhone"`
	ContactAddress string  `form:"contactAddress"`
}

// UpdateListingRequest: only price and description are mutable after
// listing; nil means "leave as is".
type UpdateListingRequest struct {
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
}
