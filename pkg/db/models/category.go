package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// Category groups products for discovery. Rows are never physically deleted;
// IsDeleted is enforced at every downstream visibility check.
type Category struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string               `gorm:"column:name;not null"`
	Status    enums.CategoryStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	IsDeleted bool                 `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
