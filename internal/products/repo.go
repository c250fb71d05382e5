package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new product and returns the persisted model.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product through the actor's visibility gate.
func (r *Repository) FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Scopes(visibility.ProductScope(actor)).
		First(&product, "products.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindManyByIDs loads the products matching ids through the actor's gate.
// Callers compare the returned count against the requested count to detect
// invisible or missing rows.
func (r *Repository) FindManyByIDs(ctx context.Context, actor visibility.Actor, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var results []models.Product
	err := r.db.WithContext(ctx).
		Scopes(visibility.ProductScope(actor)).
		Where("products.id IN ?", ids).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Update applies the non-nil DTO fields to a product owned by the vendor.
func (r *Repository) Update(ctx context.Context, vendorID, id uuid.UUID, dto UpdateProductDTO) (int64, error) {
	changes := dto.changes()
	if d := dto.PictureIDs; d != nil {
		changes["picture_ids"] = d
	}
	if len(changes) == 0 {
		return 1, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND vendor_id = ? AND is_deleted = ?", id, vendorID, false).
		Updates(changes)
	return result.RowsAffected, result.Error
}

// SoftDelete flags the product as deleted. A zero vendorID skips the ownership
// predicate; admin moderation goes through that path.
func (r *Repository) SoftDelete(ctx context.Context, vendorID, id uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false)
	if vendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", vendorID)
	}
	result := query.Update("is_deleted", true)
	return result.RowsAffected, result.Error
}

// List returns products visible to the actor plus the total count over the
// same predicate. POPULARITY orders by how many order lines reference the
// product.
func (r *Repository) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(visibility.ProductScope(actor))
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.MinStock > 0 {
		query = query.Where("products.stock >= ?", filter.MinStock)
	}
	if filter.PriceMinCents > 0 {
		query = query.Where("products.price_cents >= ?", filter.PriceMinCents)
	}
	if filter.PriceMaxCents > 0 {
		query = query.Where("products.price_cents <= ?", filter.PriceMaxCents)
	}
	if filter.CategoryID != uuid.Nil {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.VendorID != uuid.Nil {
		query = query.Where("products.vendor_id = ?", filter.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case enums.SortOrderOldest:
		query = query.Order("products.created_at ASC")
	case enums.SortOrderPopularity:
		query = query.Order(`(
			SELECT COUNT(*) FROM order_lines
			WHERE order_lines.product_id = products.id
		) DESC`)
	default:
		query = query.Order("products.created_at DESC")
	}

	params = params.Normalize()
	var results []models.Product
	err := query.
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
