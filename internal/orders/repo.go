package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Repository defines order persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLines(ctx context.Context, lines []models.OrderLine) error
	ReserveStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
	FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Order, int64, error)
	Transition(ctx context.Context, actor visibility.Actor, id uuid.UUID, target enums.OrderStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// ReserveStock decrements stock only when enough remains. A false return means
// the product disappeared or the quantity is no longer available; the caller
// must abort its transaction.
func (r *repository) ReserveStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ? AND is_deleted = ?",
		qty, productID, qty, false,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Scopes(visibility.OrderScope(actor)).
		Preload("Lines").
		Preload("Lines.Product").
		First(&order, "orders.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Scopes(visibility.OrderScope(actor))
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.PriceMinCents > 0 {
		query = query.Where("orders.price_cents >= ?", filter.PriceMinCents)
	}
	if filter.PriceMaxCents > 0 {
		query = query.Where("orders.price_cents <= ?", filter.PriceMaxCents)
	}
	if filter.ProductID != uuid.Nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM order_lines
			WHERE order_lines.order_id = orders.id AND order_lines.product_id = ?
		)`, filter.ProductID)
	}
	if filter.CategoryID != uuid.Nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM order_lines
			JOIN products ON products.id = order_lines.product_id
			WHERE order_lines.order_id = orders.id AND products.category_id = ?
		)`, filter.CategoryID)
	}
	if filter.VendorID != uuid.Nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM order_lines
			JOIN products ON products.id = order_lines.product_id
			WHERE order_lines.order_id = orders.id AND products.vendor_id = ?
		)`, filter.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case enums.SortOrderOldest:
		query = query.Order("orders.created_at ASC")
	default:
		query = query.Order("orders.created_at DESC")
	}

	params = params.Normalize()
	var results []models.Order
	err := query.
		Preload("Lines").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Transition applies the role's status machine as one conditional UPDATE. The
// predicate folds together ownership (via the actor's order scope) and the
// legal source statuses, so a missing order, a foreign order, and an illegal
// current status are indistinguishable: zero rows affected.
func (r *repository) Transition(ctx context.Context, actor visibility.Actor, id uuid.UUID, target enums.OrderStatus) (int64, error) {
	sources := legalSources(actor.Role)
	if len(sources) == 0 {
		return 0, nil
	}
	scoped := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Scopes(visibility.OrderScope(actor)).
		Where("orders.id = ?", id).
		Where("orders.status IN ?", sources)
	result := scoped.Update("status", target)
	return result.RowsAffected, result.Error
}
