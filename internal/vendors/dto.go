package vendors

import (
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// CreateVendorDTO carries the fields required to create a storefront profile.
type CreateVendorDTO struct {
	AuthID        uuid.UUID
	Name          string
	Description   string
	Phone         string
	City          string
	PostalCode    string
	PickupAddress string
	PictureID     *string
}

// ToModel converts the DTO into a persistable vendor model.
func (d CreateVendorDTO) ToModel() *models.Vendor {
	return &models.Vendor{
		ID:            uuid.New(),
		AuthID:        d.AuthID,
		Name:          d.Name,
		Description:   d.Description,
		Phone:         d.Phone,
		City:          d.City,
		PostalCode:    d.PostalCode,
		PickupAddress: d.PickupAddress,
		PictureID:     d.PictureID,
	}
}

// UpdateProfileDTO carries the mutable storefront fields. Nil means unchanged.
type UpdateProfileDTO struct {
	Name          *string
	Description   *string
	Phone         *string
	City          *string
	PostalCode    *string
	PickupAddress *string
	PictureID     *string
}

func (d UpdateProfileDTO) changes() map[string]any {
	changes := map[string]any{}
	if d.Name != nil {
		changes["name"] = *d.Name
	}
	if d.Description != nil {
		changes["description"] = *d.Description
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
	if d.PickupAddress != nil {
		changes["pickup_address"] = *d.PickupAddress
	}
	if d.PictureID != nil {
		changes["picture_id"] = *d.PictureID
	}
	return changes
}

// Filter narrows vendor listings. CategoryID keeps vendors that carry at least
// one product in that category.
type Filter struct {
	Name       string
	City       string
	CategoryID uuid.UUID
	Sort       enums.SortOrder
}
