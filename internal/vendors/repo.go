package vendors

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

// Repository exposes vendor persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vendors repo bound to the provided GORM DB.
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

// Create inserts a new vendor profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateVendorDTO) (*models.Vendor, error) {
	vendor := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// FindByID loads a vendor through the actor's visibility gate.
func (r *Repository) FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Scopes(visibility.VendorScope(actor)).
		First(&vendor, "vendors.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByAuthID loads the storefront attached to an auth account.
func (r *Repository) FindByAuthID(ctx context.Context, authID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "auth_id = ?", authID).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update applies the non-nil DTO fields to the vendor row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	changes := dto.changes()
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(changes).Error
}

// List returns vendors visible to the actor plus the total count. RELEVANCE
// orders by how many live products the vendor carries.
func (r *Repository) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Vendor, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Scopes(visibility.VendorScope(actor))
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(vendors.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(vendors.city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if filter.CategoryID != uuid.Nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM products
			WHERE products.vendor_id = vendors.id
			  AND products.category_id = ?
			  AND products.is_deleted = ?
		)`, filter.CategoryID, false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case enums.SortOrderOldest:
		query = query.Order("vendors.created_at ASC")
	case enums.SortOrderRelevance:
		query = query.Order(`(
			SELECT COUNT(*) FROM products
			WHERE products.vendor_id = vendors.id AND products.is_deleted = FALSE
		) DESC`)
	default:
		query = query.Order("vendors.created_at DESC")
	}

	params = params.Normalize()
	var results []models.Vendor
	err := query.
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
