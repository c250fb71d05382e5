package visibility

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// Actor is the authenticated identity plus the role/status flags driving every
// authorization decision for one request. It is immutable for the request.
type Actor struct {
	AuthID     uuid.UUID
	ProfileID  uuid.UUID
	Role       enums.Role
	Status     enums.AccountStatus
	IsVerified bool
	IsDeleted  bool
}

// Guest returns the anonymous actor used for public endpoints.
func Guest() Actor {
	return Actor{Role: enums.RoleUnspecified}
}

// IsGuest reports whether the actor carries no commerce identity.
func (a Actor) IsGuest() bool {
	return a.Role != enums.RoleUser && a.Role != enums.RoleVendor && !a.Role.IsStaff()
}

// IsStaff reports whether the actor may bypass the public visibility gate.
func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// Scope is a composable predicate applied on top of a storage query.
type Scope func(*gorm.DB) *gorm.DB

// CategoryScope gates categories per actor context. Public and vendor contexts
// see only approved, non-deleted categories; staff sees everything including
// soft-deleted rows for moderation.
func CategoryScope(actor Actor) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsStaff() {
			return db
		}
		return db.
			Where("categories.status = ?", enums.CategoryStatusApproved).
			Where("categories.is_deleted = ?", false)
	}
}

// VendorScope gates vendor profiles per actor context. The public gate requires
// the vendor's auth record to be approved, verified, and not deleted.
func VendorScope(actor Actor) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsStaff() {
			return db
		}
		if actor.Role == enums.RoleVendor && actor.ProfileID != uuid.Nil {
			return db.Where("vendors.id = ?", actor.ProfileID)
		}
		return db.
			Joins("JOIN auth_accounts ON auth_accounts.id = vendors.auth_id").
			Where("auth_accounts.status = ?", enums.AccountStatusApproved).
			Where("auth_accounts.is_verified = ?", true).
			Where("auth_accounts.is_deleted = ?", false)
	}
}

// ProductScope gates products per actor context. The public gate additionally
// requires the owning category and vendor to pass their own gates; vendors are
// restricted to their own inventory with no category/vendor approval gate.
func ProductScope(actor Actor) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsStaff() {
			return db
		}
		if actor.Role == enums.RoleVendor && actor.ProfileID != uuid.Nil {
			return db.Where("products.vendor_id = ?", actor.ProfileID)
		}
		return db.
			Joins("JOIN categories ON categories.id = products.category_id").
			Joins("JOIN vendors ON vendors.id = products.vendor_id").
			Joins("JOIN auth_accounts ON auth_accounts.id = vendors.auth_id").
			Where("products.is_deleted = ?", false).
			Where("categories.status = ?", enums.CategoryStatusApproved).
			Where("categories.is_deleted = ?", false).
			Where("auth_accounts.status = ?", enums.AccountStatusApproved).
			Where("auth_accounts.is_verified = ?", true).
			Where("auth_accounts.is_deleted = ?", false)
	}
}

// OrderScope gates orders per actor context. Users see their own orders;
// vendors see orders whose every line references one of their products, which
// also excludes orders with no lines at all.
func OrderScope(actor Actor) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor.IsStaff():
			return db
		case actor.Role == enums.RoleUser && actor.ProfileID != uuid.Nil:
			return db.Where("orders.user_id = ?", actor.ProfileID)
		case actor.Role == enums.RoleVendor && actor.ProfileID != uuid.Nil:
			return db.
				Where(`NOT EXISTS (
					SELECT 1 FROM order_lines
					JOIN products ON products.id = order_lines.product_id
					WHERE order_lines.order_id = orders.id AND products.vendor_id <> ?
				)`, actor.ProfileID).
				Where(`EXISTS (
					SELECT 1 FROM order_lines
					JOIN products ON products.id = order_lines.product_id
					WHERE order_lines.order_id = orders.id AND products.vendor_id = ?
				)`, actor.ProfileID)
		default:
			// Guests have no order surface at all.
			return db.Where("1 = 0")
		}
	}
}

// CategoryVisible reports whether the referenced category passes the actor's
// gate. A uuid.Nil id means no category filter was requested and is always
// visible. List endpoints use this for the fail-soft empty-result policy.
func CategoryVisible(ctx context.Context, db *gorm.DB, actor Actor, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return true, nil
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(CategoryScope(actor)).
		Where("categories.id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// VendorVisible reports whether the referenced vendor passes the actor's gate.
func VendorVisible(ctx context.Context, db *gorm.DB, actor Actor, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return true, nil
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Vendor{}).
		Scopes(VendorScope(actor)).
		Where("vendors.id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
