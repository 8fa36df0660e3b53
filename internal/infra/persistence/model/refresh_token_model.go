package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table, the refresh token
// ledger. Rows are never deleted on rotation; the retired row keeps a
// pointer to its successor so replays remain detectable.
type RefreshTokenModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	TokenHash    string     `gorm:"type:varchar(64);unique;not null"`
	ExpiresAt    time.Time  `gorm:"not null"`
	CreatedAt    time.Time
	Revoked      bool       `gorm:"not null;default:false"`
	RevokedAt    *time.Time
	ReplacedByID *uuid.UUID `gorm:"type:uuid"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
