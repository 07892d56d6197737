package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the users table. The *_count columns are the
// denormalized activity counters shown on the dashboard.
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserName     string    `gorm:"column:user_name;size:50;not null" json:"user_name"`
	UserEmail    string    `gorm:"column:user_email;size:255;unique;not null" json:"user_email"`
	UserPassword string    `gorm:"column:user_password;not null" json:"-"`
	UserGoogleID *string   `gorm:"column:user_google_id;size:255;unique" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:'user'" json:"user_role"`
	UserPhone    string    `gorm:"column:user_phone;size:30" json:"user_phone"`
	UserLocation string    `gorm:"column:user_location;size:255" json:"user_location"`
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserDonatedCount   int `gorm:"column:user_donated_count;not null;default:0" json:"user_donated_count"`
	UserSoldCount      int `gorm:"column:user_sold_count;not null;default:0" json:"user_sold_count"`
	UserSponsoredCount int `gorm:"column:user_sponsored_count;not null;default:0" json:"user_sponsored_count"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
