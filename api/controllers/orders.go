package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/api/middleware"
	"github.com/mercato-app/mercato-backend/api/responses"
	"github.com/mercato-app/mercato-backend/api/validators"
	"github.com/mercato-app/mercato-backend/internal/orders"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/logger"
	"github.com/mercato-app/mercato-backend/pkg/metrics"
)

type orderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type orderCreateRequest struct {
	Products []orderLineRequest `json:"products" validate:"required,min=1,dive"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func parseOrderFilter(r *http.Request) (orders.Filter, error) {
	var filter orders.Filter

	var err error
	if filter.Status, err = validators.ParseQueryOrderStatus(r); err != nil {
		return orders.Filter{}, err
	}
	if filter.PriceMinCents, err = validators.ParseQueryInt(r, "minPrice", 0, 0, 1<<30); err != nil {
		return orders.Filter{}, err
	}
	if filter.PriceMaxCents, err = validators.ParseQueryInt(r, "maxPrice", 0, 0, 1<<30); err != nil {
		return orders.Filter{}, err
	}
	if filter.CategoryID, err = validators.ParseQueryUUID(r, "categoryId"); err != nil {
		return orders.Filter{}, err
	}
	if filter.VendorID, err = validators.ParseQueryUUID(r, "vendorId"); err != nil {
		return orders.Filter{}, err
	}
	if filter.ProductID, err = validators.ParseQueryUUID(r, "productId"); err != nil {
		return orders.Filter{}, err
	}
	if filter.Sort, err = validators.ParseSortOrder(r); err != nil {
		return orders.Filter{}, err
	}
	return filter, nil
}

func OrderCreate(svc orders.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]orders.CartLine, 0, len(req.Products))
		for _, line := range req.Products {
			lines = append(lines, orders.CartLine{ProductID: line.ProductID, Quantity: line.Quantity})
		}

		order, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.IncOrdersPlaced()
		responses.WriteCreated(w, "order placed", order)
	}
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter, err := parseOrderFilter(r)
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
		responses.WriteSuccessMeta(w, "orders", results, meta)
	}
}

func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "order", order)
	}
}

func OrderSetStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		target, err := enums.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
			return
		}

		order, err := svc.SetStatus(r.Context(), middleware.ActorFromContext(r.Context()), id, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "order status updated", order)
	}
}
