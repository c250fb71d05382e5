package controllers

import (
	"net/http"
	"strings"

	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/api/validators"
	"github.com/mercato-app/mercato-backend/internal/auth"
	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/logger"
)

type accountStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type accountDeletedRequest struct {
	Deleted bool `json:"deleted"`
}

func AdminUserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := users.Filter{
			Name: validators.SanitizeString(r.URL.Query().Get("name"), 120),
			City: validators.SanitizeString(r.URL.Query().Get("city"), 120),
		}

		actor := middleware.ActorFromContext(r.Context())
		results, meta, err := svc.List(r.Context(), actor, filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, "users", results, meta)
	}
}

// AdminAccountSetStatus approves or rejects an account, the gate vendor
// registrations wait behind.
func AdminAccountSetStatus(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := validators.ParseUUIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req accountStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseAccountStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid account status"))
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		if err := svc.SetAccountStatus(r.Context(), actor, accountID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "account status updated", nil)
	}
}

func AdminAccountSetDeleted(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := validators.ParseUUIDParam(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req accountDeletedRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		if err := svc.SetAccountDeleted(r.Context(), actor, accountID, req.Deleted); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "account updated", nil)
	}
}
