package dto

// CreateDonationRequest: multipart form. Either book_id points at an
// existing book, or the new-book fields describe one to create. Photos
// arrive as file parts ("images", up to five).
type CreateDonationRequest struct {
	BookID string `form:"book_id" validate:"omitempty,uuid4"`

	Title  string `form:"title" validate:"required_without=BookID"`
	Author string `form:"author" validate:"required_without=BookID"`
	Genre  string `form:"genre" validate:"required_without=BookID"`
	ISBN   string `form:"isbn" validate:"omitempty,max=20"`

	Quantity     int    `form:"quantity" validate:"omitempty,gte=1"`
	Condition    string `form:"condition" validate:"required,oneof=new like-new good fair poor"`
	Description  string `form:"description" validate:"required"`
	DonationType string `form:"donationType" validate:"omitempty,oneof=physical sponsor"`

	ContactEmail   string `form:"contactEmail" validate:"required,email"`
	ContactPhone   string `form:"contactPhone" validate:"omitempty,max=30"`
	ContactAddress string `form:"contactAddress" validate:"omitempty,max=255"`
}

// UpdateDonationStatusRequest: admin bookkeeping on the donation record.
type UpdateDonationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected completed"`
}
