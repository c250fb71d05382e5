package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/pagination"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Service defines category operations for every actor context.
type Service interface {
	Propose(ctx context.Context, actor visibility.Actor, name string) (*models.Category, error)
	Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Category, pagination.Meta, error)
	SetStatus(ctx context.Context, actor visibility.Actor, id uuid.UUID, status enums.CategoryStatus) error
	Delete(ctx context.Context, actor visibility.Actor, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, name string, status enums.CategoryStatus) (*models.Category, error)
	FindByID(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Category, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CategoryStatus) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo repository
}

// NewService builds a category service with the required dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

// Propose creates a category. Vendor proposals start PENDING and only surface
// publicly once an admin approves; staff submissions go live immediately.
func (s *service) Propose(ctx context.Context, actor visibility.Actor, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	status := enums.CategoryStatusPending
	if actor.IsStaff() {
		status = enums.CategoryStatusApproved
	}

	category, err := s.repo.Create(ctx, name, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return category, nil
}

func (s *service) Get(ctx context.Context, actor visibility.Actor, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return category, nil
}

func (s *service) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.Category, pagination.Meta, error) {
	results, total, err := s.repo.List(ctx, actor, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return results, params.MetaFor(total), nil
}

func (s *service) SetStatus(ctx context.Context, actor visibility.Actor, id uuid.UUID, status enums.CategoryStatus) error {
	if !actor.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only admins can moderate categories")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category status")
	}
	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category status")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actor visibility.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only admins can delete categories")
	}
	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}
