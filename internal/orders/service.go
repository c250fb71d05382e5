package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type profileResolver interface {
	FindByAuthID(ctx context.Context, authID uuid.UUID) (*models.User, error)
}

type productLoader interface {
	FindManyByIDs(ctx context.Context, actor visibility.Actor, ids []uuid.UUID) ([]models.Product, error)
}

type gateChecker func(ctx context.Context, db *gorm.DB, actor visibility.Actor, id uuid.UUID) (bool, error)

// Service defines order operations for every actor context.
type Service interface {
	Create(ctx context.Context, actor visibility.Actor, lines []CartLine) (*models.Order, error)
	Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Order, pagination.Meta, error)
	SetStatus(ctx context.Context, actor visibility.Actor, id uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo         Repository
	profiles     profileResolver
	products     productLoader
	tx           txRunner
	db           *gorm.DB
	categoryGate gateChecker
	vendorGate   gateChecker
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, profiles profileResolver, products productLoader, tx txRunner, db *gorm.DB) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile resolver required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{
		repo:         repo,
		profiles:     profiles,
		products:     products,
		tx:           tx,
		db:           db,
		categoryGate: visibility.CategoryVisible,
		vendorGate:   visibility.VendorVisible,
	}, nil
}

// Create places an order from the actor's cart. Validation happens against a
// live snapshot before the transaction; the conditional stock decrement inside
// the transaction is the only authority on availability, so a concurrent
// depletion between the two aborts the whole order.
func (s *service) Create(ctx context.Context, actor visibility.Actor, lines []CartLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one product")
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		ids = append(ids, line.ProductID)
	}

	user, err := s.profiles.FindByAuthID(ctx, actor.AuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving user profile")
	}

	products, err := s.products.FindManyByIDs(ctx, actor, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading products")
	}
	// A duplicate, deleted, or invisible product id surfaces here as a count
	// mismatch and aborts the whole cart.
	if len(products) != len(lines) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "failed to create order")
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	vendors := make(map[uuid.UUID]struct{}, 1)
	for _, product := range products {
		byID[product.ID] = product
		vendors[product.VendorID] = struct{}{}
	}
	if len(vendors) > 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain products from a single vendor")
	}

	totalCents := 0
	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		product := byID[line.ProductID]
		if product.Stock < line.Quantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
				WithDetails(map[string]any{"product_id": product.ID, "available": product.Stock})
		}
		// The snapshot records the list price even when a sale price is
		// set; discounts are presentation, not part of the charge.
		priceCents := product.PriceCents
		totalCents += priceCents * line.Quantity
		orderLines = append(orderLines, models.OrderLine{
			ID:         uuid.New(),
			ProductID:  product.ID,
			PriceCents: priceCents,
			Quantity:   line.Quantity,
		})
	}

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     user.ID,
		PriceCents: totalCents,
		Status:     enums.OrderStatusPending,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}
		for i := range orderLines {
			orderLines[i].OrderID = order.ID
		}
		if err := repo.CreateLines(ctx, orderLines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order lines")
		}
		for _, line := range orderLines {
			reserved, err := repo.ReserveStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserving stock")
			}
			if !reserved {
				return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "placing order")
	}

	return s.Get(ctx, actor, order.ID)
}

func (s *service) Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

// List returns orders visible to the actor. FK filters referencing rows the
// actor cannot see fail soft: empty page, zero total.
func (s *service) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Order, pagination.Meta, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	categoryOK, err := s.categoryGate(ctx, s.db, actor, filter.CategoryID)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category filter")
	}
	vendorOK, err := s.vendorGate(ctx, s.db, actor, filter.VendorID)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking vendor filter")
	}
	if !categoryOK || !vendorOK {
		return []models.Order{}, params.MetaFor(0), nil
	}

	results, total, err := s.repo.List(ctx, actor, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return results, params.MetaFor(total), nil
}

// SetStatus moves an order through the role's status machine. An order that is
// missing, owned by someone else, or sitting in a status the role cannot leave
// all answer the same way: not found.
func (s *service) SetStatus(ctx context.Context, actor visibility.Actor, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if !TargetAllowed(actor.Role, target) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status change not allowed")
	}

	affected, err := s.repo.Transition(ctx, actor, id, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, actor, id)
}
