package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Service defines product operations for every actor context.
type Service interface {
	Create(ctx context.Context, actor visibility.Actor, dto CreateProductDTO) (*models.Product, error)
	Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Product, pagination.Meta, error)
	Update(ctx context.Context, actor visibility.Actor, id uuid.UUID, dto UpdateProductDTO) (*models.Product, error)
	Delete(ctx context.Context, actor visibility.Actor, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, vendorID, id uuid.UUID, dto UpdateProductDTO) (int64, error)
	SoftDelete(ctx context.Context, vendorID, id uuid.UUID) (int64, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Product, int64, error)
}

type gateChecker func(ctx context.Context, db *gorm.DB, actor visibility.Actor, id uuid.UUID) (bool, error)

type service struct {
	repo         repository
	db           *gorm.DB
	categoryGate gateChecker
	vendorGate   gateChecker
}

// NewService builds a product service with the required dependencies.
func NewService(repo repository, db *gorm.DB) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{
		repo:         repo,
		db:           db,
		categoryGate: visibility.CategoryVisible,
		vendorGate:   visibility.VendorVisible,
	}, nil
}

// Create registers a new listing for the vendor. The target category must be
// approved and live; vendors cannot attach products to pending or deleted
// categories.
func (s *service) Create(ctx context.Context, actor visibility.Actor, dto CreateProductDTO) (*models.Product, error) {
	if actor.Role != enums.RoleVendor || actor.ProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can create products")
	}
	if dto.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	visible, err := s.categoryGate(ctx, s.db, visibility.Guest(), dto.CategoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category")
	}
	if !visible {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category not found")
	}

	product, err := s.repo.Create(ctx, dto.ToModel(actor.ProfileID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

// List returns products matching the filter. Category or vendor filters that
// reference rows outside the actor's gate fail soft: empty page, zero total.
func (s *service) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Product, pagination.Meta, error) {
	categoryOK, err := s.categoryGate(ctx, s.db, actor, filter.CategoryID)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category filter")
	}
	vendorOK, err := s.vendorGate(ctx, s.db, actor, filter.VendorID)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking vendor filter")
	}
	if !categoryOK || !vendorOK {
		return []models.Product{}, params.MetaFor(0), nil
	}

	results, total, err := s.repo.List(ctx, actor, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return results, params.MetaFor(total), nil
}

func (s *service) Update(ctx context.Context, actor visibility.Actor, id uuid.UUID, dto UpdateProductDTO) (*models.Product, error) {
	if actor.Role != enums.RoleVendor || actor.ProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can update products")
	}
	if dto.CategoryID != nil {
		visible, err := s.categoryGate(ctx, s.db, visibility.Guest(), *dto.CategoryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category")
		}
		if !visible {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category not found")
		}
	}

	affected, err := s.repo.Update(ctx, actor.ProfileID, id, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.Get(ctx, actor, id)
}

// Delete soft-deletes a listing. Vendors are limited to their own products;
// staff can remove any listing.
func (s *service) Delete(ctx context.Context, actor visibility.Actor, id uuid.UUID) error {
	var ownerID uuid.UUID
	switch {
	case actor.IsStaff():
		ownerID = uuid.Nil
	case actor.Role == enums.RoleVendor && actor.ProfileID != uuid.Nil:
		ownerID = actor.ProfileID
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can delete products")
	}

	affected, err := s.repo.SoftDelete(ctx, ownerID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
