package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/api/validators"
	"github.com/mercato-app/mercato-backend/internal/products"
	"github.com/mercato-app/mercato-backend/pkg/logger"
)

type productCreateRequest struct {
	CategoryID     uuid.UUID `json:"category_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	SKU            string    `json:"sku" validate:"required"`
	Stock          int       `json:"stock" validate:"gte=0"`
	PriceCents     int       `json:"price_cents" validate:"gt=0"`
	SalePriceCents *int      `json:"sale_price_cents,omitempty"`
	PictureIDs     []string  `json:"picture_ids,omitempty"`
}

type productUpdateRequest struct {
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	SKU            *string    `json:"sku,omitempty"`
	Stock          *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	PriceCents     *int       `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	SalePriceCents *int       `json:"sale_price_cents,omitempty"`
	PictureIDs     []string   `json:"picture_ids,omitempty"`
}

func parseProductFilter(r *http.Request) (products.Filter, error) {
	filter := products.Filter{Name: validators.SanitizeString(r.URL.Query().Get("name"), 120)}

	var err error
	if filter.MinStock, err = validators.ParseQueryInt(r, "minStock", 0, 0, 1<<30); err != nil {
		return products.Filter{}, err
	}
	if filter.PriceMinCents, err = validators.ParseQueryInt(r, "minPrice", 0, 0, 1<<30); err != nil {
		return products.Filter{}, err
	}
	if filter.PriceMaxCents, err = validators.ParseQueryInt(r, "maxPrice", 0, 0, 1<<30); err != nil {
		return products.Filter{}, err
	}
	if filter.CategoryID, err = validators.ParseQueryUUID(r, "categoryId"); err != nil {
		return products.Filter{}, err
	}
	if filter.VendorID, err = validators.ParseQueryUUID(r, "vendorId"); err != nil {
		return products.Filter{}, err
	}
	if filter.Sort, err = validators.ParseSortOrder(r); err != nil {
		return products.Filter{}, err
	}
	return filter, nil
}

func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := parseProductFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		results, meta, err := svc.List(r.Context(), actor, filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, "products", results, meta)
	}
}

// VendorProductList narrows the listing to the vendor's own catalog,
// including hidden listings.
func VendorProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := parseProductFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		filter.VendorID = actor.ProfileID
		results, meta, err := svc.List(r.Context(), actor, filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, "products", results, meta)
	}
}

func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product", product)
	}
}

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), products.CreateProductDTO{
			CategoryID:     req.CategoryID,
			Name:           req.Name,
			Description:    req.Description,
			SKU:            req.SKU,
			Stock:          req.Stock,
			PriceCents:     req.PriceCents,
			SalePriceCents: req.SalePriceCents,
			PictureIDs:     req.PictureIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "product created", product)
	}
}

func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req productUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, products.UpdateProductDTO{
			CategoryID:     req.CategoryID,
			Name:           req.Name,
			Description:    req.Description,
			SKU:            req.SKU,
			Stock:          req.Stock,
			PriceCents:     req.PriceCents,
			SalePriceCents: req.SalePriceCents,
			PictureIDs:     req.PictureIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product updated", product)
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), middleware.ActorFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product deleted", nil)
	}
}
