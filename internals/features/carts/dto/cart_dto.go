package dto

// AddCartItemRequest: quantity defaults to 1 when omitted.
type AddCartItemRequest struct {
	BookID   string `json:"book_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateCartItemRequest: a quantity below one is a validation error, not
// an implicit remove.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}
