package orders

import (
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// CartLine is one requested product/quantity pair at order placement.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Filter narrows order listings. FK filters fail soft when the referenced row
// is outside the actor's visibility gate.
type Filter struct {
	Status        enums.OrderStatus
	PriceMinCents int
	PriceMaxCents int
	CategoryID    uuid.UUID
	VendorID      uuid.UUID
	ProductID     uuid.UUID
	Sort          enums.SortOrder
}
