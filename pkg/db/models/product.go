package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a vendor listing. Stock is mutated exclusively through the
// conditional decrement path of order placement.
type Product struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID       uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index"`
	CategoryID     uuid.UUID `gorm:"column:category_id;type:uuid;not null;index"`
	Name           string    `gorm:"column:name;not null"`
	Description    string    `gorm:"column:description;not null"`
	SKU            string    `gorm:"column:sku;not null"`
	Stock          int       `gorm:"column:stock;not null;default:0"`
	PriceCents     int       `gorm:"column:price_cents;not null"`
	SalePriceCents *int      `gorm:"column:sale_price_cents"`
	PictureIDs     []string  `gorm:"column:picture_ids;type:jsonb;serializer:json"`
	IsDeleted      bool      `gorm:"column:is_deleted;not null;default:false"`
	Category       *Category `gorm:"foreignKey:CategoryID"`
	Vendor         *Vendor   `gorm:"foreignKey:VendorID"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
