package dto

// PaySponsorshipRequest: direct payment record for a pending book
// request. Whole currency unit minimum; payment details are stored
// verbatim.
type PaySponsorshipRequest struct {
	Amount         float64        `json:"amount" validate:"required,gte=1"`
	PaymentMethod  string         `json:"payment_method" validate:"omitempty,max=50"`
	PaymentDetails map[string]any `json:"payment_details"`
}

// SnapTokenRequest: gateway checkout flow; the sponsorship stays pending
// until the webhook confirms settlement.
type SnapTokenRequest struct {
	Amount float64 `json:"amount" validate:"required,gte=1"`
}

// UpdateSponsorRequestStatusRequest: sponsor-side moderation of a book
// request before any money moves.
type UpdateSponsorRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
