package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/internal/vendors"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// Directory resolves token claims into a fully populated actor for request
// scoping. Profile ids are looked up per request; accounts are small and the
// lookup rides the same connection pool as the handler's own queries.
type Directory struct {
	accounts *Repository
	users    *users.Repository
	vendors  *vendors.Repository
}

// NewDirectory builds an actor directory over the shared connection.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{
		accounts: NewRepository(db),
		users:    users.NewRepository(db),
		vendors:  vendors.NewRepository(db),
	}
}

// ResolveActor loads the account behind a token and attaches the role's
// profile id. Deleted accounts resolve to an error; the middleware turns that
// into a 401.
func (d *Directory) ResolveActor(ctx context.Context, accountID uuid.UUID) (visibility.Actor, error) {
	account, err := d.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return visibility.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return visibility.Actor{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}
	if account.IsDeleted {
		return visibility.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	actor := visibility.Actor{
		AuthID:     account.ID,
		Role:       account.Role,
		Status:     account.Status,
		IsVerified: account.IsVerified,
		IsDeleted:  account.IsDeleted,
	}

	switch account.Role {
	case enums.RoleUser:
		profile, err := d.users.FindByAuthID(ctx, account.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return visibility.Actor{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user profile")
		}
		if profile != nil {
			actor.ProfileID = profile.ID
		}
	case enums.RoleVendor:
		profile, err := d.vendors.FindByAuthID(ctx, account.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return visibility.Actor{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vendor profile")
		}
		if profile != nil {
			actor.ProfileID = profile.ID
		}
	}

	return actor, nil
}
