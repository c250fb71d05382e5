package users

import (
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
)

// CreateUserDTO carries the fields required to create a commerce profile.
type CreateUserDTO struct {
	AuthID          uuid.UUID
	Name            string
	Phone           string
	City            string
	PostalCode      string
	DeliveryAddress string
	PictureID       *string
}

// ToModel converts the DTO into a persistable user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:              uuid.New(),
		AuthID:          d.AuthID,
		Name:            d.Name,
		Phone:           d.Phone,
		City:            d.City,
		PostalCode:      d.PostalCode,
		DeliveryAddress: d.DeliveryAddress,
		PictureID:       d.PictureID,
	}
}

// UpdateProfileDTO carries the mutable profile fields. Nil means unchanged.
type UpdateProfileDTO struct {
	Name            *string
	Phone           *string
	City            *string
	PostalCode      *string
	DeliveryAddress *string
	PictureID       *string
}

func (d UpdateProfileDTO) changes() map[string]any {
	changes := map[string]any{}
	if d.Name != nil {
		changes["name"] = *d.Name
	}
	if d.Phone != nil {
		changes["phone"] = *d.Phone
	}
	if d.City != nil {
		changes["city"] = *d.City
	}
	if d.PostalCode != nil {
		changes["postal_code"] = *d.PostalCode
	}
	if d.DeliveryAddress != nil {
		changes["delivery_address"] = *d.DeliveryAddress
	}
	if d.PictureID != nil {
		changes["picture_id"] = *d.PictureID
	}
	return changes
}

// Filter narrows admin user listings.
type Filter struct {
	Name string
	City string
}
