package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
)

const (
	DonationPending   = "pending"
	DonationApproved  = "approved"
	DonationRejected  = "rejected"
	DonationCompleted = "completed"
)

const (
	DonationTypePhysical = "physical"
	DonationTypeSponsor  = "sponsor"
)

// DonationModel records one donation event. The book row itself carries
// the canonical donated state; this row holds what was given (how many
// copies, in what shape) plus any photos the donor attached.
type DonationModel struct {
	DonationID     uuid.UUID `gorm:"column:donation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_id"`
	DonationUserID uuid.UUID `gorm:"column:donation_user_id;type:uuid;not null;index" json:"donation_user_id"`
	DonationBookID uuid.UUID `gorm:"column:donation_book_id;type:uuid;not null;index" json:"donation_book_id"`

	DonationQuantity    int    `gorm:"column:donation_quantity;not null;default:1" json:"donation_quantity"`
	DonationCondition   string `gorm:"column:donation_condition;type:varchar(20);not null" json:"donation_condition"`
	DonationDescription string `gorm:"column:donation_description;type:text;not null" json:"donation_description"`
	DonationType        string `gorm:"column:donation_type;type:varchar(10);not null;default:'physical'" json:"donation_type"`
	DonationStatus      string `gorm:"column:donation_status;type:varchar(20);not null;default:'pending'" json:"donation_status"`

	DonationImages pq.StringArray `gorm:"column:donation_images;type:text[]" json:"donation_images"`

	Donor *userModel.UserModel `gorm:"foreignKey:DonationUserID;references:UserID" json:"donor,omitempty"`
	Book  *bookModel.BookModel `gorm:"foreignKey:DonationBookID;references:BookID" json:"book,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DonationModel) TableName() string {
	return "donations"
}

// BeforeCreate fills the row defaults so an intake that omitted them
// still lands as one pending physical copy.
func (d *DonationModel) BeforeCreate(tx *gorm.DB) error {
	if d.DonationQuantity < 1 {
		d.DonationQuantity = 1
	}
	if d.DonationType == "" {
		d.DonationType = DonationTypePhysical
	}
	if d.DonationStatus == "" {
		d.DonationStatus = DonationPending
	}
	return nil
}
