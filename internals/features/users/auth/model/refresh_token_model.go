package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel stores the HMAC hash of issued refresh tokens, never
// the raw token itself.
type RefreshTokenModel struct {
	RefreshTokenID        uuid.UUID  `gorm:"column:refresh_token_id;type:uuid;default:gen_random_uuid();primaryKey" json:"refresh_token_id"`
	RefreshTokenUserID    uuid.UUID  `gorm:"column:refresh_token_user_id;type:uuid;not null;index" json:"refresh_token_user_id"`
	RefreshTokenHash      []byte     `gorm:"column:refresh_token_hash;type:bytea;not null;uniqueIndex" json:"-"`
	RefreshTokenExpiresAt time.Time  `gorm:"column:refresh_token_expires_at;not null" json:"refresh_token_expires_at"`
	RefreshTokenRevokedAt *time.Time `gorm:"column:refresh_token_revoked_at" json:"refresh_token_revoked_at,omitempty"`
	RefreshTokenUserAgent *string    `gorm:"column:refresh_token_user_agent;type:text" json:"-"`
	RefreshTokenIP        *string    `gorm:"column:refresh_token_ip;size:64" json:"-"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
