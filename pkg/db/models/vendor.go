package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is the storefront profile attached to a VENDOR-role auth account.
type Vendor struct {
	ID            uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthID        uuid.UUID    `gorm:"column:auth_id;type:uuid;not null;uniqueIndex"`
	Name          string       `gorm:"column:name;not null"`
	Description   string       `gorm:"column:description;not null"`
	Phone         string       `gorm:"column:phone;not null"`
	City          string       `gorm:"column:city;not null"`
	PostalCode    string       `gorm:"column:postal_code;not null"`
	PickupAddress string       `gorm:"column:pickup_address;not null"`
	PictureID     *string      `gorm:"column:picture_id"`
	Auth          *AuthAccount `gorm:"foreignKey:AuthID"`
	Products      []Product    `gorm:"foreignKey:VendorID"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
