package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// AuthAccount represents the credential record every actor derives from.
type AuthAccount struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string              `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string              `gorm:"column:password_hash;not null"`
	Role         enums.Role          `gorm:"column:role;type:text;not null;default:'UNSPECIFIED'"`
	Status       enums.AccountStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	IsVerified   bool                `gorm:"column:is_verified;not null;default:false"`
	IsDeleted    bool                `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (AuthAccount) TableName() string {
	return "auth_accounts"
}
