package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/internal/orders"
	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
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
);`, `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  comment TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type reviewFixture struct {
	userAuthID uuid.UUID
	userID     uuid.UUID
	vendorID   uuid.UUID
	orderID    uuid.UUID
}

func seedDeliveredOrder(t *testing.T, db *gorm.DB) reviewFixture {
	t.Helper()

	authID := uuid.New()
	require.NoError(t, db.Create(&models.AuthAccount{
		ID:           authID,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         enums.RoleUser,
		Status:       enums.AccountStatusApproved,
		IsVerified:   true,
	}).Error)

	userID := uuid.New()
	require.NoError(t, db.Create(&models.User{
		ID:              userID,
		AuthID:          authID,
		Name:            "Buyer",
		Phone:           "555-0101",
		City:            "Springfield",
		PostalCode:      "12345",
		DeliveryAddress: "2 Home St",
	}).Error)

	vendorID := uuid.New()
	require.NoError(t, db.Create(&models.Vendor{
		ID:            vendorID,
		AuthID:        uuid.New(),
		Name:          "Vendor",
		Description:   "d",
		Phone:         "555-0100",
		City:          "Springfield",
		PostalCode:    "12345",
		PickupAddress: "1 Pickup Ln",
	}).Error)

	productID := uuid.New()
	require.NoError(t, db.Create(&models.Product{
		ID:          productID,
		VendorID:    vendorID,
		CategoryID:  uuid.New(),
		Name:        "Product",
		Description: "d",
		SKU:         "SKU-1",
		Stock:       10,
		PriceCents:  100,
	}).Error)

	orderID := uuid.New()
	require.NoError(t, db.Create(&models.Order{
		ID:         orderID,
		UserID:     userID,
		PriceCents: 100,
		Status:     enums.OrderStatusDelivered,
	}).Error)
	require.NoError(t, db.Create(&models.OrderLine{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductID:  productID,
		PriceCents: 100,
		Quantity:   1,
	}).Error)

	return reviewFixture{userAuthID: authID, userID: userID, vendorID: vendorID, orderID: orderID}
}

func newReviewsService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), orders.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func buyerActor(f reviewFixture) visibility.Actor {
	return visibility.Actor{AuthID: f.userAuthID, ProfileID: f.userID, Role: enums.RoleUser}
}

func TestCreateReviewOnOwnOrder(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)

	review, err := svc.Create(context.Background(), buyerActor(fixture), CreateReviewDTO{
		OrderID: fixture.orderID,
		Rating:  4,
		Comment: "arrived quickly",
	})
	require.NoError(t, err)
	assert.Equal(t, fixture.orderID, review.OrderID)
	assert.Equal(t, fixture.userID, review.UserID)
	assert.Equal(t, 4, review.Rating)
}

func TestCreateReviewAllowsRepeats(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)
	ctx := context.Background()

	_, err := svc.Create(ctx, buyerActor(fixture), CreateReviewDTO{OrderID: fixture.orderID, Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, buyerActor(fixture), CreateReviewDTO{OrderID: fixture.orderID, Rating: 2, Comment: "changed my mind"})
	require.NoError(t, err)

	listed, err := svc.ListByOrder(ctx, buyerActor(fixture), fixture.orderID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCreateReviewForeignOrderFails(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)
	stranger := seedDeliveredOrder(t, conn)

	_, err := svc.Create(context.Background(), buyerActor(stranger), CreateReviewDTO{
		OrderID: fixture.orderID,
		Rating:  5,
		Comment: "not my order",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "failed to create review", typed.Message())
}

func TestCreateReviewMissingOrderFails(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)

	_, err := svc.Create(context.Background(), buyerActor(fixture), CreateReviewDTO{
		OrderID: uuid.New(),
		Rating:  5,
		Comment: "ghost order",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "failed to create review", typed.Message())
}

func TestCreateReviewValidatesRating(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), buyerActor(fixture), CreateReviewDTO{
			OrderID: fixture.orderID,
			Rating:  rating,
			Comment: "out of range",
		})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestVendorRatingAveragesAcrossOrders(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	ctx := context.Background()

	first := seedDeliveredOrder(t, conn)
	// Second order for the same vendor, different buyer.
	second := seedDeliveredOrder(t, conn)
	require.NoError(t, conn.Exec(
		"UPDATE products SET vendor_id = ? WHERE vendor_id = ?",
		first.vendorID, second.vendorID,
	).Error)

	_, err := svc.Create(ctx, buyerActor(first), CreateReviewDTO{OrderID: first.orderID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, buyerActor(second), CreateReviewDTO{OrderID: second.orderID, Rating: 2, Comment: "late"})
	require.NoError(t, err)

	rating, ok, err := svc.VendorRating(ctx, first.vendorID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3.50", rating.StringFixed(2))
}

func TestVendorRatingNoReviews(t *testing.T) {
	conn := setupReviewsTestDB(t)
	svc := newReviewsService(t, conn)
	fixture := seedDeliveredOrder(t, conn)

	rating, ok, err := svc.VendorRating(context.Background(), fixture.vendorID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, rating.IsZero())
}
