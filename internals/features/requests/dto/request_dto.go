package dto

// CreateBookRequest: multipart request intake. Supporting documents and
// the optional cover image arrive as file parts.
type CreateBookRequest struct {
	Title       string `form:"title" validate:"required"`
	Author      string `form:"author"`
	ISBN        string `form:"isbn" validate:"required,max=20"`
	Genre       string `form:"genre" validate:"required"`
	Description string `form:"description"`
	Quantity    int    `form:"quantity" validate:"omitempty,gte=1"`
	Reason      string `form:"reason" validate:"required"`
	Urgency     string `form:"urgency" validate:"omitempty,oneof=low medium high"`

	Street  string `form:"street" validate:"required"`
	City    string `form:"city" validate:"required"`
	State   string `form:"state" validate:"required"`
	ZipCode string `form:"zipCode" validate:"required"`
	Country string `form:"country" validate:"required"`
}

// MatchRequest: explicit match of a request to a chosen donated book.
type MatchRequest struct {
	BookID string `json:"book_id" validate:"required,uuid4"`
}

// UpdateRequestStatusRequest: moderation move, checked against the
// lifecycle graph.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected matched fulfilled"`
}

// UpdateRequestPriorityRequest: manual admin override of the computed
// score.
type UpdateRequestPriorityRequest struct {
	Priority int `json:"priority" validate:"gte=0,lte=1000"`
}
