package visibility

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

func setupVisibilityTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	authAccounts := `
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
);`
	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  auth_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  city TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  delivery_address TEXT NOT NULL,
  picture_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	vendors := `
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
);`
	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
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
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, ddl := range []string{authAccounts, users, vendors, categories, products, orders, orderLines} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

type vendorFixture struct {
	auth   *models.AuthAccount
	vendor *models.Vendor
}

func newVendorFixture(t *testing.T, db *gorm.DB, status enums.AccountStatus, verified, deleted bool) vendorFixture {
	t.Helper()

	auth := &models.AuthAccount{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleVendor,
		Status:       status,
		IsVerified:   verified,
		IsDeleted:    deleted,
	}
	require.NoError(t, db.Create(auth).Error)

	vendor := &models.Vendor{
		ID:            uuid.New(),
		AuthID:        auth.ID,
		Name:          "Vendor " + uuid.NewString()[:8],
		Description:   "test vendor",
		Phone:         "555-0100",
		City:          "Springfield",
		PostalCode:    "12345",
		PickupAddress: "1 Warehouse Rd",
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendorFixture{auth: auth, vendor: vendor}
}

func newCategory(t *testing.T, db *gorm.DB, status enums.CategoryStatus, deleted bool) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:        uuid.New(),
		Name:      "Category " + uuid.NewString()[:8],
		Status:    status,
		IsDeleted: deleted,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newProduct(t *testing.T, db *gorm.DB, vendorID, categoryID uuid.UUID, deleted bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		VendorID:    vendorID,
		CategoryID:  categoryID,
		Name:        "Product " + uuid.NewString()[:8],
		Description: "test product",
		SKU:         "SKU-" + uuid.NewString()[:8],
		Stock:       10,
		PriceCents:  1000,
		IsDeleted:   deleted,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productVisibleTo(t *testing.T, db *gorm.DB, actor Actor, id uuid.UUID) bool {
	t.Helper()

	var count int64
	err := db.Model(&models.Product{}).
		Scopes(ProductScope(actor)).
		Where("products.id = ?", id).
		Count(&count).Error
	require.NoError(t, err)
	return count > 0
}

func orderVisibleTo(t *testing.T, db *gorm.DB, actor Actor, id uuid.UUID) bool {
	t.Helper()

	var count int64
	err := db.Model(&models.Order{}).
		Scopes(OrderScope(actor)).
		Where("orders.id = ?", id).
		Count(&count).Error
	require.NoError(t, err)
	return count > 0
}

func TestProductScopePublicRequiresFullChain(t *testing.T) {
	db := setupVisibilityTestDB(t)

	okVendor := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	okCategory := newCategory(t, db, enums.CategoryStatusApproved, false)
	visible := newProduct(t, db, okVendor.vendor.ID, okCategory.ID, false)

	deletedProduct := newProduct(t, db, okVendor.vendor.ID, okCategory.ID, true)

	pendingCategory := newCategory(t, db, enums.CategoryStatusPending, false)
	behindPendingCategory := newProduct(t, db, okVendor.vendor.ID, pendingCategory.ID, false)

	deletedCategory := newCategory(t, db, enums.CategoryStatusApproved, true)
	behindDeletedCategory := newProduct(t, db, okVendor.vendor.ID, deletedCategory.ID, false)

	unverifiedVendor := newVendorFixture(t, db, enums.AccountStatusApproved, false, false)
	behindUnverifiedVendor := newProduct(t, db, unverifiedVendor.vendor.ID, okCategory.ID, false)

	pendingVendor := newVendorFixture(t, db, enums.AccountStatusPending, true, false)
	behindPendingVendor := newProduct(t, db, pendingVendor.vendor.ID, okCategory.ID, false)

	deletedVendor := newVendorFixture(t, db, enums.AccountStatusApproved, true, true)
	behindDeletedVendor := newProduct(t, db, deletedVendor.vendor.ID, okCategory.ID, false)

	guest := Guest()
	assert.True(t, productVisibleTo(t, db, guest, visible.ID))
	assert.False(t, productVisibleTo(t, db, guest, deletedProduct.ID))
	assert.False(t, productVisibleTo(t, db, guest, behindPendingCategory.ID))
	assert.False(t, productVisibleTo(t, db, guest, behindDeletedCategory.ID))
	assert.False(t, productVisibleTo(t, db, guest, behindUnverifiedVendor.ID))
	assert.False(t, productVisibleTo(t, db, guest, behindPendingVendor.ID))
	assert.False(t, productVisibleTo(t, db, guest, behindDeletedVendor.ID))
}

func TestProductScopeStaffSeesEverything(t *testing.T) {
	db := setupVisibilityTestDB(t)

	pendingVendor := newVendorFixture(t, db, enums.AccountStatusPending, false, false)
	pendingCategory := newCategory(t, db, enums.CategoryStatusPending, false)
	hidden := newProduct(t, db, pendingVendor.vendor.ID, pendingCategory.ID, true)

	admin := Actor{AuthID: uuid.New(), ProfileID: uuid.New(), Role: enums.RoleAdmin}
	assert.True(t, productVisibleTo(t, db, admin, hidden.ID))
}

func TestProductScopeVendorOwnInventoryOnly(t *testing.T) {
	db := setupVisibilityTestDB(t)

	mine := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	theirs := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	pendingCategory := newCategory(t, db, enums.CategoryStatusPending, false)

	// Vendors see their own products even behind an unapproved category.
	myProduct := newProduct(t, db, mine.vendor.ID, pendingCategory.ID, false)
	theirProduct := newProduct(t, db, theirs.vendor.ID, pendingCategory.ID, false)

	actor := Actor{AuthID: mine.auth.ID, ProfileID: mine.vendor.ID, Role: enums.RoleVendor}
	assert.True(t, productVisibleTo(t, db, actor, myProduct.ID))
	assert.False(t, productVisibleTo(t, db, actor, theirProduct.ID))
}

func TestOrderScopeUserOwnOrdersOnly(t *testing.T) {
	db := setupVisibilityTestDB(t)

	userID := uuid.New()
	otherID := uuid.New()

	mine := &models.Order{ID: uuid.New(), UserID: userID, PriceCents: 1000, Status: enums.OrderStatusPending}
	theirs := &models.Order{ID: uuid.New(), UserID: otherID, PriceCents: 2000, Status: enums.OrderStatusPending}
	require.NoError(t, db.Create(mine).Error)
	require.NoError(t, db.Create(theirs).Error)

	actor := Actor{AuthID: uuid.New(), ProfileID: userID, Role: enums.RoleUser}
	assert.True(t, orderVisibleTo(t, db, actor, mine.ID))
	assert.False(t, orderVisibleTo(t, db, actor, theirs.ID))
}

func TestOrderScopeVendorRequiresEveryLine(t *testing.T) {
	db := setupVisibilityTestDB(t)

	a := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	b := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	category := newCategory(t, db, enums.CategoryStatusApproved, false)
	productA := newProduct(t, db, a.vendor.ID, category.ID, false)
	productB := newProduct(t, db, b.vendor.ID, category.ID, false)

	pure := &models.Order{ID: uuid.New(), UserID: uuid.New(), PriceCents: 1000, Status: enums.OrderStatusPending}
	mixed := &models.Order{ID: uuid.New(), UserID: uuid.New(), PriceCents: 2000, Status: enums.OrderStatusPending}
	empty := &models.Order{ID: uuid.New(), UserID: uuid.New(), PriceCents: 0, Status: enums.OrderStatusPending}
	require.NoError(t, db.Create(pure).Error)
	require.NoError(t, db.Create(mixed).Error)
	require.NoError(t, db.Create(empty).Error)

	lines := []models.OrderLine{
		{ID: uuid.New(), OrderID: pure.ID, ProductID: productA.ID, PriceCents: 1000, Quantity: 1},
		{ID: uuid.New(), OrderID: mixed.ID, ProductID: productA.ID, PriceCents: 1000, Quantity: 1},
		{ID: uuid.New(), OrderID: mixed.ID, ProductID: productB.ID, PriceCents: 1000, Quantity: 1},
	}
	require.NoError(t, db.Create(&lines).Error)

	actorA := Actor{AuthID: a.auth.ID, ProfileID: a.vendor.ID, Role: enums.RoleVendor}
	actorB := Actor{AuthID: b.auth.ID, ProfileID: b.vendor.ID, Role: enums.RoleVendor}

	assert.True(t, orderVisibleTo(t, db, actorA, pure.ID))
	assert.False(t, orderVisibleTo(t, db, actorB, pure.ID))
	assert.False(t, orderVisibleTo(t, db, actorA, mixed.ID), "order with a foreign line must stay hidden")
	assert.False(t, orderVisibleTo(t, db, actorB, mixed.ID))
	assert.False(t, orderVisibleTo(t, db, actorA, empty.ID))
}

func TestOrderScopeGuestSeesNothing(t *testing.T) {
	db := setupVisibilityTestDB(t)

	order := &models.Order{ID: uuid.New(), UserID: uuid.New(), PriceCents: 500, Status: enums.OrderStatusPending}
	require.NoError(t, db.Create(order).Error)

	assert.False(t, orderVisibleTo(t, db, Guest(), order.ID))
}

func TestCategoryVisibleFailSoftGate(t *testing.T) {
	db := setupVisibilityTestDB(t)
	ctx := context.Background()

	approved := newCategory(t, db, enums.CategoryStatusApproved, false)
	pending := newCategory(t, db, enums.CategoryStatusPending, false)

	guest := Guest()
	admin := Actor{AuthID: uuid.New(), ProfileID: uuid.New(), Role: enums.RoleAdmin}

	ok, err := CategoryVisible(ctx, db, guest, approved.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CategoryVisible(ctx, db, guest, pending.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CategoryVisible(ctx, db, admin, pending.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// No filter requested means nothing to gate.
	ok, err = CategoryVisible(ctx, db, guest, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVendorVisibleFailSoftGate(t *testing.T) {
	db := setupVisibilityTestDB(t)
	ctx := context.Background()

	approved := newVendorFixture(t, db, enums.AccountStatusApproved, true, false)
	unverified := newVendorFixture(t, db, enums.AccountStatusApproved, false, false)

	guest := Guest()

	ok, err := VendorVisible(ctx, db, guest, approved.vendor.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VendorVisible(ctx, db, guest, unverified.vendor.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VendorVisible(ctx, db, guest, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
