package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// Order aggregates the line items placed by one user against one vendor.
// PriceCents is the snapshot total captured at creation and never recomputed.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	PriceCents int               `gorm:"column:price_cents;not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	Lines      []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	User       *User             `gorm:"foreignKey:UserID"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
