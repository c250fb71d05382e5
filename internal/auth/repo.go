package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// Repository exposes auth-account persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an accounts repo bound to the provided GORM DB.
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

// Create inserts a new auth account and returns the persisted model.
func (r *Repository) Create(ctx context.Context, account *models.AuthAccount) (*models.AuthAccount, error) {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// FindByEmail loads an account by its normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	err := r.db.WithContext(ctx).
		First(&account, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID loads an account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AuthAccount, error) {
	var account models.AuthAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// MarkVerified flips the verification flag on an account.
func (r *Repository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthAccount{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthAccount{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// SetStatus moves an account to the given approval status.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.AccountStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthAccount{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SetDeleted toggles the account soft-delete flag.
func (r *Repository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	return r.db.WithContext(ctx).
		Model(&models.AuthAccount{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}
