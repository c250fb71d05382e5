package controllers

import (
	"net/http"

	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/api/validators"
	"github.com/mercato-app/mercato-backend/internal/reviews"
	"github.com/mercato-app/mercato-backend/internal/vendors"
	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/logger"
)

type vendorProfileUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	City          *string `json:"city,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	PickupAddress *string `json:"pickup_address,omitempty"`
	PictureID     *string `json:"picture_id,omitempty"`
}

// vendorDetail decorates a storefront with its review aggregate.
type vendorDetail struct {
	*models.Vendor
	Rating *string `json:"rating,omitempty"`
}

func VendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := vendors.Filter{
			Name: validators.SanitizeString(r.URL.Query().Get("name"), 120),
			City: validators.SanitizeString(r.URL.Query().Get("city"), 120),
		}
		if filter.CategoryID, err = validators.ParseQueryUUID(r, "categoryId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Sort, err = validators.ParseSortOrder(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		results, meta, err := svc.List(r.Context(), actor, filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, "vendors", results, meta)
	}
}

func VendorGet(svc vendors.Service, reviewSvc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.Get(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail := vendorDetail{Vendor: vendor}
		if rating, ok, err := reviewSvc.VendorRating(r.Context(), vendor.ID); err == nil && ok {
			formatted := rating.StringFixed(2)
			detail.Rating = &formatted
		}
		responses.WriteSuccess(w, "vendor", detail)
	}
}

func VendorOwnProfile(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendor, err := svc.OwnProfile(r.Context(), middleware.ActorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendor profile", vendor)
	}
}

func VendorUpdateOwnProfile(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vendorProfileUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, err := svc.UpdateOwnProfile(r.Context(), middleware.ActorFromContext(r.Context()), vendors.UpdateProfileDTO{
			Name:          req.Name,
			Description:   req.Description,
			Phone:         req.Phone,
			City:          req.City,
			PostalCode:    req.PostalCode,
			PickupAddress: req.PickupAddress,
			PictureID:     req.PictureID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendor profile updated", vendor)
	}
}
