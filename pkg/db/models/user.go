package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the commerce profile attached to a USER-role auth account.
type User struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthID          uuid.UUID    `gorm:"column:auth_id;type:uuid;not null;uniqueIndex"`
	Name            string       `gorm:"column:name;not null"`
	Phone           string       `gorm:"column:phone;not null"`
	City            string       `gorm:"column:city;not null"`
	PostalCode      string       `gorm:"column:postal_code;not null"`
	DeliveryAddress string       `gorm:"column:delivery_address;not null"`
	PictureID       *string      `gorm:"column:picture_id"`
	Auth            *AuthAccount `gorm:"foreignKey:AuthID"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
