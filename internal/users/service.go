package users

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

// Service defines user-profile operations.
type Service interface {
	OwnProfile(ctx context.Context, actor visibility.Actor) (*models.User, error)
	UpdateOwnProfile(ctx context.Context, actor visibility.Actor, dto UpdateProfileDTO) (*models.User, error)
	List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.User, pagination.Meta, error)
}

type repository interface {
	FindByAuthID(ctx context.Context, authID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
	List(ctx context.Context, filter Filter, params pagination.Params) ([]models.User, int64, error)
}

type service struct {
	repo repository
}

// NewService builds a user service with the required dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) OwnProfile(ctx context.Context, actor visibility.Actor) (*models.User, error) {
	user, err := s.repo.FindByAuthID(ctx, actor.AuthID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user profile")
	}
	return user, nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, actor visibility.Actor, dto UpdateProfileDTO) (*models.User, error) {
	user, err := s.OwnProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user.ID, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user profile")
	}
	return s.OwnProfile(ctx, actor)
}

// List is a staff-only projection over shopper profiles.
func (s *service) List(ctx context.Context, actor visibility.Actor, filter Filter, params pagination.Params) ([]models.User, pagination.Meta, error) {
	if !actor.IsStaff() {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	results, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	return results, params.MetaFor(total), nil
}
