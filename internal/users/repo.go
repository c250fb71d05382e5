package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
)

// Repository exposes user-profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
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

// Create inserts a new user profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAuthID loads the profile attached to an auth account.
func (r *Repository) FindByAuthID(ctx context.Context, authID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "auth_id = ?", authID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil DTO fields to the user row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	changes := dto.changes()
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(changes).Error
}

// List returns user profiles matching the filter plus the total count.
func (r *Repository) List(ctx context.Context, filter Filter, params pagination.Params) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(users.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(users.city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params = params.Normalize()
	var results []models.User
	err := query.
		Order("users.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
