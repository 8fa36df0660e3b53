package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	Name          string    `gorm:"type:varchar(100)"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Role          string    `gorm:"type:varchar(20);not null"`
	Active        bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`

	// The single outstanding verify/reset token, stored inline. The kind
	// column tags which action the hash redeems.
	SecurityTokenKind      *string    `gorm:"type:varchar(10)"`
	SecurityTokenHash      *string    `gorm:"type:varchar(64)"`
	SecurityTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	TalentProfile   *TalentProfileModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EmployerProfile *EmployerProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// TalentProfileModel mirrors the 'talent_profiles' table. UserID references users.id (UUID).
type TalentProfileModel struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	Headline  string    `gorm:"type:varchar(255)"`
	ResumeURL string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TalentProfileModel) TableName() string {
	return "talent_profiles"
}

// EmployerProfileModel mirrors the 'employer_profiles' table. UserID references users.id (UUID).
type EmployerProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	CompanyName string    `gorm:"type:varchar(100);not null"`
	Website     string    `gorm:"type:varchar(255)"`
	About       string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmployerProfileModel) TableName() string {
	return "employer_profiles"
}
