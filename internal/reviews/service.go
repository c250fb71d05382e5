package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

type orderResolver interface {
	FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Order, error)
}

// Service defines review operations.
type Service interface {
	Create(ctx context.Context, actor visibility.Actor, dto CreateReviewDTO) (*models.Review, error)
	ListByOrder(ctx context.Context, actor visibility.Actor, orderID uuid.UUID) ([]models.Review, error)
	VendorRating(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, bool, error)
}

type repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Review, error)
	VendorRating(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, bool, error)
}

type service struct {
	repo   repository
	orders orderResolver
}

// NewService builds a review service with the required dependencies.
func NewService(repo repository, orders orderResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order resolver required")
	}
	return &service{repo: repo, orders: orders}, nil
}

// Create attaches a review to one of the actor's own orders. The order lookup
// runs through the actor's visibility scope, so a foreign or missing order id
// fails the same way. Repeat reviews on the same order are accepted.
func (s *service) Create(ctx context.Context, actor visibility.Actor, dto CreateReviewDTO) (*models.Review, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if dto.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.orders.FindByID(ctx, actor, dto.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "failed to create review")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	review, err := s.repo.Create(ctx, dto.ToModel(order.UserID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}
	return review, nil
}

// ListByOrder returns the reviews on an order the actor can see.
func (s *service) ListByOrder(ctx context.Context, actor visibility.Actor, orderID uuid.UUID) ([]models.Review, error) {
	if _, err := s.orders.FindByID(ctx, actor, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	reviews, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}
	return reviews, nil
}

// VendorRating averages the vendor's review ratings; ok is false when the
// vendor has none.
func (s *service) VendorRating(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, bool, error) {
	rating, ok, err := s.repo.VendorRating(ctx, vendorID)
	if err != nil {
		return decimal.Zero, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "computing vendor rating")
	}
	return rating, ok, nil
}
