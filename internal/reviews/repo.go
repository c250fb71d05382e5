package reviews

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
)

// Repository exposes review persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review and returns the persisted model.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// ListByOrder returns every review left on an order, newest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// VendorRating averages every rating left on orders carrying the vendor's
// products. Returns false when the vendor has no reviews yet.
func (r *Repository) VendorRating(ctx context.Context, vendorID uuid.UUID) (decimal.Decimal, bool, error) {
	// Orders hold a single vendor's products, so one matching line is enough
	// to attribute the review; EXISTS keeps multi-line orders from weighting
	// the average.
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(reviews.rating)").
		Where(`EXISTS (
			SELECT 1 FROM order_lines
			JOIN products ON products.id = order_lines.product_id
			WHERE order_lines.order_id = reviews.order_id
			  AND products.vendor_id = ?
		)`, vendorID).
		Scan(&avg).Error
	if err != nil {
		return decimal.Zero, false, err
	}
	if !avg.Valid {
		return decimal.Zero, false, nil
	}
	return decimal.NewFromFloat(avg.Float64).Round(2), true, nil
}
