package dto

// CreateBookRequest: plain JSON create of a donated book (no upload).
type CreateBookRequest struct {
	Title          string `json:"title" form:"title" validate:"required"`
	Author         string `json:"author" form:"author" validate:"required"`
	Genre          string `json:"genre" form:"genre" validate:"required"`
	Condition      string `json:"condition" form:"condition" validate:"required,oneof=new like-new good fair poor"`
	ISBN           string `json:"isbn" form:"isbn" validate:"omitempty,max=20"`
	Description    string `json:"description" form:"description"`
	ContactEmail   string `json:"contact_email" form:"contactEmail" validate:"omitempty,email"`
	ContactPhone   string `json:"contact_phone" form:"contactPhone"`
	ContactAddress string `json:"contact_address" form:"contactAddress"`
}

// DonateBookRequest: multipart donate form; the cover image arrives as a
// file part and is validated in the controller.
type DonateBookRequest struct {
	Title          string `form:"title" validate:"required"`
	Author         string `form:"author" validate:"required"`
	Genre          string `form:"genre" validate:"required"`
	Condition      string `form:"condition" validate:"required,oneof=new like-new good fair poor"`
	ISBN           string `form:"isbn" validate:"omitempty,max=20"`
	Description    string `form:"description"`
	ContactEmail   string `form:"contactEmail" validate:"omitempty,email"`
	ContactPhone   string `form:"contactPhone"`
	ContactAddress string `form:"contactAddress"`
}

// GoogleBookRequest: create-or-get by external catalog id.
type GoogleBookRequest struct {
	GoogleBooksID  string  `json:"google_books_id" validate:"required"`
	Type           string  `json:"type" validate:"omitempty,oneof=donated sold new"`
	Condition      string  `json:"condition" validate:"omitempty,oneof=new like-new good fair poor"`
	Price          float64 `json:"price" validate:"omitempty,gte=0"`
	ContactEmail   string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   string  `json:"contact_phone"`
	ContactAddress string  `json:"contact_address"`
}

// UpdateBookStatusRequest: owner-driven status move, checked against the
// explicit transition graph.
type UpdateBookStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved fulfilled"`
}
