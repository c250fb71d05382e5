package categories

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

// Filter narrows category listings. Status only takes effect
// for staff actors; the public scope already pins both.
type Filter struct {
	Name   string
	Status enums.CategoryStatus
}

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
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

// Create inserts a category in the given status.
func (r *Repository) Create(ctx context.Context, name string, status enums.CategoryStatus) (*models.Category, error) {
	category := &models.Category{
		ID:     uuid.New(),
		Name:   name,
		Status: status,
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID loads a category through the actor's visibility gate.
func (r *Repository) FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Scopes(visibility.CategoryScope(actor)).
		First(&category, "categories.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns categories visible to the actor plus the total count.
func (r *Repository) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Category, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(visibility.CategoryScope(actor))
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.Status != "" && actor.IsStaff() {
		query = query.Where("categories.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params = params.Normalize()
	var results []models.Category
	err := query.
		Order("categories.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// UpdateStatus moves a category to the given moderation status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CategoryStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// SoftDelete flags the category as deleted without removing the row.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	return result.RowsAffected, result.Error
}
