package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	requestModel "bookbridge_backend/internals/features/requests/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
)

const (
	SponsorshipPending   = "pending"
	SponsorshipCompleted = "completed"
	SponsorshipApproved  = "approved"
	SponsorshipRejected  = "rejected"
)

// SponsorshipModel ties a sponsor's payment to one book request. The raw
// gateway payload lands in sponsorship_payment_details as-is.
type SponsorshipModel struct {
	SponsorshipID        uuid.UUID `gorm:"column:sponsorship_id;type:uuid;default:gen_random_uuid();primaryKey" json:"sponsorship_id"`
	SponsorshipRequestID uuid.UUID `gorm:"column:sponsorship_request_id;type:uuid;not null;index" json:"sponsorship_request_id"`
	SponsorshipSponsorID uuid.UUID `gorm:"column:sponsorship_sponsor_id;type:uuid;not null;index" json:"sponsorship_sponsor_id"`

	SponsorshipAmount float64 `gorm:"column:sponsorship_amount;not null" json:"sponsorship_amount"`
	SponsorshipStatus string  `gorm:"column:sponsorship_status;type:varchar(20);not null;default:'pending'" json:"sponsorship_status"`

	SponsorshipOrderID        string         `gorm:"column:sponsorship_order_id;size:64;uniqueIndex" json:"sponsorship_order_id"`
	SponsorshipSnapToken      string         `gorm:"column:sponsorship_snap_token;size:255" json:"sponsorship_snap_token,omitempty"`
	SponsorshipPaymentDetails datatypes.JSON `gorm:"column:sponsorship_payment_details;type:jsonb" json:"sponsorship_payment_details,omitempty"`

	Sponsor *userModel.UserModel       `gorm:"foreignKey:SponsorshipSponsorID;references:UserID" json:"sponsor,omitempty"`
	Request *requestModel.RequestModel `gorm:"foreignKey:SponsorshipRequestID;references:RequestID" json:"request,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SponsorshipModel) TableName() string {
	return "sponsorships"
}
