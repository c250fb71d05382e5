package controllers

import (
	"net/http"

	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/api/validators"
	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/pkg/logger"
)

type profileUpdateRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	City            *string `json:"city,omitempty"`
	PostalCode      *string `json:"postal_code,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	PictureID       *string `json:"picture_id,omitempty"`
}

func UserProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.OwnProfile(r.Context(), middleware.ActorFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "profile", profile)
	}
}

func UserProfileUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.UpdateOwnProfile(r.Context(), middleware.ActorFromContext(r.Context()), users.UpdateProfileDTO{
			Name:            req.Name,
			Phone:           req.Phone,
			City:            req.City,
			PostalCode:      req.PostalCode,
			DeliveryAddress: req.DeliveryAddress,
			PictureID:       req.PictureID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "profile updated", profile)
	}
}
