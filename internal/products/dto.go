package products

import (
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// CreateProductDTO carries the fields a vendor submits for a new listing.
type CreateProductDTO struct {
	CategoryID     uuid.UUID
	Name           string
	Description    string
	SKU            string
	Stock          int
	PriceCents     int
	SalePriceCents *int
	PictureIDs     []string
}

// ToModel converts the DTO into a persistable product owned by the vendor.
func (d CreateProductDTO) ToModel(vendorID uuid.UUID) *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		VendorID:       vendorID,
		CategoryID:     d.CategoryID,
		Name:           d.Name,
		Description:    d.Description,
		SKU:            d.SKU,
		Stock:          d.Stock,
		PriceCents:     d.PriceCents,
		SalePriceCents: d.SalePriceCents,
		PictureIDs:     d.PictureIDs,
	}
}

// UpdateProductDTO carries the mutable listing fields. Nil means unchanged.
type UpdateProductDTO struct {
	CategoryID     *uuid.UUID
	Name           *string
	Description    *string
	SKU            *string
	Stock          *int
	PriceCents     *int
	SalePriceCents *int
	PictureIDs     []string
}

func (d UpdateProductDTO) changes() map[string]any {
	changes := map[string]any{}
	if d.CategoryID != nil {
		changes["category_id"] = *d.CategoryID
	}
	if d.Name != nil {
		changes["name"] = *d.Name
	}
	if d.Description != nil {
		changes["description"] = *d.Description
	}
	if d.SKU != nil {
		changes["sku"] = *d.SKU
	}
	if d.Stock != nil {
		changes["stock"] = *d.Stock
	}
	if d.PriceCents != nil {
		changes["price_cents"] = *d.PriceCents
	}
	if d.SalePriceCents != nil {
		changes["sale_price_cents"] = *d.SalePriceCents
	}
	return changes
}

// Filter narrows product listings. Price bounds are inclusive and expressed in
// cents; zero values mean "no bound".
type Filter struct {
	Name          string
	MinStock      int
	PriceMinCents int
	PriceMaxCents int
	CategoryID    uuid.UUID
	VendorID      uuid.UUID
	Sort          enums.SortOrder
}
