package dto

// UpdateProfileRequest: only name, phone and location are editable; nil
// means "leave as is". Email and role never change here.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}
