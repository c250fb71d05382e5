package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Service defines vendor-profile operations for every actor context.
type Service interface {
	Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Vendor, pagination.Meta, error)
	OwnProfile(ctx context.Context, actor visibility.Actor) (*models.Vendor, error)
	UpdateOwnProfile(ctx context.Context, actor visibility.Actor, dto UpdateProfileDTO) (*models.Vendor, error)
}

type repository interface {
	FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Vendor, error)
	FindByAuthID(ctx context.Context, authID uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Vendor, int64, error)
}

type gateChecker func(ctx context.Context, db *gorm.DB, actor visibility.Actor, id uuid.UUID) (bool, error)

type service struct {
	repo         repository
	db           *gorm.DB
	categoryGate gateChecker
}

// NewService builds a vendor service with the required dependencies.
func NewService(repo repository, db *gorm.DB) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{
		repo:         repo,
		db:           db,
		categoryGate: visibility.CategoryVisible,
	}, nil
}

func (s *service) Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vendor")
	}
	return vendor, nil
}

// List returns vendors matching the filter. A category filter pointing at a
// category the actor cannot see fails soft: empty page, zero total.
func (s *service) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Vendor, pagination.Meta, error) {
	visible, err := s.categoryGate(ctx, s.db, actor, filter.CategoryID)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking category filter")
	}
	if !visible {
		return []models.Vendor{}, params.MetaFor(0), nil
	}

	results, total, err := s.repo.List(ctx, actor, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vendors")
	}
	return results, params.MetaFor(total), nil
}

func (s *service) OwnProfile(ctx context.Context, actor visibility.Actor) (*models.Vendor, error) {
	vendor, err := s.repo.FindByAuthID(ctx, actor.AuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vendor profile")
	}
	return vendor, nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, actor visibility.Actor, dto UpdateProfileDTO) (*models.Vendor, error) {
	vendor, err := s.OwnProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, vendor.ID, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating vendor profile")
	}
	return s.OwnProfile(ctx, actor)
}
