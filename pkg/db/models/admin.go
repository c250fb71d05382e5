package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the moderation profile attached to an ADMIN or SUPER_ADMIN auth account.
type Admin struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthID    uuid.UUID    `gorm:"column:auth_id;type:uuid;not null;uniqueIndex"`
	Name      string       `gorm:"column:name;not null"`
	Phone     string       `gorm:"column:phone;not null"`
	PictureID *string      `gorm:"column:picture_id"`
	Auth      *AuthAccount `gorm:"foreignKey:AuthID"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
