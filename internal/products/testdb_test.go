package products

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS auth_accounts (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'UNSPECIFIED',
  status TEXT NOT NULL DEFAULT 'PENDING',
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  auth_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  phone TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  pickup_address TEXT NOT NULL,
  picture_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  sku TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  price_cents INTEGER NOT NULL,
  sale_price_cents INTEGER,
  picture_ids TEXT,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedApprovedVendor(t *testing.T, db *gorm.DB) *models.Vendor {
	t.Helper()

	auth := &models.AuthAccount{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleVendor,
		Status:       enums.AccountStatusApproved,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(auth).Error)

	vendor := &models.Vendor{
		ID:            uuid.New(),
		AuthID:        auth.ID,
		Name:          "Vendor " + uuid.NewString()[:8],
		Description:   "desc",
		Phone:         "555-0100",
		City:          "Springfield",
		PostalCode:    "12345",
		PickupAddress: "1 Pickup Ln",
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

func seedApprovedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:     uuid.New(),
		Name:   "Category " + uuid.NewString()[:8],
		Status: enums.CategoryStatusApproved,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, vendorID, categoryID uuid.UUID, name string, stock, priceCents int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		VendorID:    vendorID,
		CategoryID:  categoryID,
		Name:        name,
		Description: "d",
		SKU:         "SKU-" + uuid.NewString()[:8],
		Stock:       stock,
		PriceCents:  priceCents,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
