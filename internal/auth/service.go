package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercato-app/mercato-backend/internal/users"
	"github.com/mercato-app/mercato-backend/internal/vendors"
	pkgauth "github.com/mercato-app/mercato-backend/pkg/auth"
	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/db"
	"github.com/mercato-app/mercato-backend/pkg/db/models"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/security"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

const invalidCredentialsMessage = "invalid credentials"

// tokenStore consumes one-shot token ids. Redis-backed in production.
type tokenStore interface {
	ConsumeToken(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// Service defines the account lifecycle operations.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) error
	RegisterVendor(ctx context.Context, req RegisterVendorRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Verify(ctx context.Context, token string) error
	ResendOTP(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	SetAccountStatus(ctx context.Context, actor visibility.Actor, accountID uuid.UUID, status enums.AccountStatus) error
	SetAccountDeleted(ctx context.Context, actor visibility.Actor, accountID uuid.UUID, deleted bool) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             *db.Client
	Tokens         tokenStore
	Notifier       Notifier
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	db          *db.Client
	accounts    *Repository
	tokens      tokenStore
	notifier    Notifier
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token store required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{
		db:          params.DB,
		accounts:    NewRepository(params.DB.DB()),
		tokens:      params.Tokens,
		notifier:    params.Notifier,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// RegisterUser onboards a shopper. Accounts start APPROVED but unverified; the
// verification token goes out through the notifier.
func (s *service) RegisterUser(ctx context.Context, req RegisterUserRequest) error {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password)
	if err != nil {
		return err
	}

	var account *models.AuthAccount
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		if err := ensureEmailFree(ctx, accounts, email); err != nil {
			return err
		}

		account, err = accounts.Create(ctx, &models.AuthAccount{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: passwordHash,
			Role:         enums.RoleUser,
			Status:       enums.AccountStatusApproved,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating account")
		}

		_, err = users.NewRepository(tx).Create(ctx, users.CreateUserDTO{
			AuthID:          account.ID,
			Name:            req.Name,
			Phone:           req.Phone,
			City:            req.City,
			PostalCode:      req.PostalCode,
			DeliveryAddress: req.DeliveryAddress,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user profile")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering user")
	}

	return s.sendVerification(ctx, account)
}

// RegisterVendor onboards a storefront. Vendor accounts start PENDING and stay
// invisible to the public catalog until an admin approves them.
func (s *service) RegisterVendor(ctx context.Context, req RegisterVendorRequest) error {
	email, passwordHash, err := s.prepareCredentials(req.Email, req.Password)
	if err != nil {
		return err
	}

	var account *models.AuthAccount
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		if err := ensureEmailFree(ctx, accounts, email); err != nil {
			return err
		}

		account, err = accounts.Create(ctx, &models.AuthAccount{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: passwordHash,
			Role:         enums.RoleVendor,
			Status:       enums.AccountStatusPending,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating account")
		}

		_, err = vendors.NewRepository(tx).Create(ctx, vendors.CreateVendorDTO{
			AuthID:        account.ID,
			Name:          req.Name,
			Description:   req.Description,
			Phone:         req.Phone,
			City:          req.City,
			PostalCode:    req.PostalCode,
			PickupAddress: req.PickupAddress,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating vendor profile")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "registering vendor")
	}

	return s.sendVerification(ctx, account)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if !account.IsVerified {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "email not verified")
	}
	if account.Status == enums.AccountStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgauth.MintToken(s.jwtCfg, time.Now().UTC(), pkgauth.TokenPayload{
		AccountID: account.ID,
		Role:      account.Role,
		TokenType: enums.TokenTypeAccess,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	return &LoginResponse{AccessToken: token, Role: account.Role}, nil
}

// Verify consumes a VERIFY token and flips the account's verified flag. Tokens
// are single use; replaying one fails even inside its validity window.
func (s *service) Verify(ctx context.Context, token string) error {
	claims, err := s.parseOneShot(ctx, token, enums.TokenTypeVerify)
	if err != nil {
		return err
	}
	if err := s.accounts.MarkVerified(ctx, claims.AccountID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking account verified")
	}
	return nil
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}
	if account.IsVerified {
		return pkgerrors.New(pkgerrors.CodeValidation, "account already verified")
	}
	return s.sendVerification(ctx, account)
}

// RequestPasswordReset mails a RESET token. Unknown emails answer success so
// the endpoint cannot be used to probe for accounts.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}

	token, err := pkgauth.MintToken(s.jwtCfg, time.Now().UTC(), pkgauth.TokenPayload{
		AccountID: account.ID,
		Role:      account.Role,
		TokenType: enums.TokenTypeReset,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	if err := s.notifier.SendPasswordReset(ctx, account.Email, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending reset token")
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.parseOneShot(ctx, token, enums.TokenTypeReset)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	if err := s.accounts.UpdatePassword(ctx, claims.AccountID, passwordHash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating password")
	}
	return nil
}

// SetAccountStatus moves an account through the approval lifecycle. Used by
// staff to approve or reject vendor registrations.
func (s *service) SetAccountStatus(ctx context.Context, actor visibility.Actor, accountID uuid.UUID, status enums.AccountStatus) error {
	if err := s.loadModerated(ctx, actor, accountID); err != nil {
		return err
	}
	if err := s.accounts.SetStatus(ctx, accountID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating account status")
	}
	return nil
}

// SetAccountDeleted toggles the soft-delete flag. Deleted accounts fail login
// and actor resolution but their rows stay for audit.
func (s *service) SetAccountDeleted(ctx context.Context, actor visibility.Actor, accountID uuid.UUID, deleted bool) error {
	if err := s.loadModerated(ctx, actor, accountID); err != nil {
		return err
	}
	if err := s.accounts.SetDeleted(ctx, accountID, deleted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating account")
	}
	return nil
}

// loadModerated enforces the staff gate and confirms the target exists. Staff
// accounts cannot be moderated by other admins.
func (s *service) loadModerated(ctx context.Context, actor visibility.Actor, accountID uuid.UUID) error {
	if !actor.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}
	if account.Role.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot moderate staff accounts")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.AuthAccount, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	account, err := s.accounts.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up account")
	}

	valid, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !valid || account.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return account, nil
}

// parseOneShot validates an emailed token and burns its jti so it cannot be
// replayed. The consume TTL matches the token's own remaining window.
func (s *service) parseOneShot(ctx context.Context, token string, expected enums.TokenType) (*pkgauth.TokenClaims, error) {
	claims, err := pkgauth.ParseToken(s.jwtCfg, token)
	if err != nil {
		if errors.Is(err, pkgauth.ErrTokenExpired) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}
	if claims.TokenType != expected {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")
	}
	fresh, err := s.tokens.ConsumeToken(ctx, claims.ID, ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consuming token")
	}
	if !fresh {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token already used")
	}
	return claims, nil
}

func (s *service) prepareCredentials(email, password string) (string, string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(password) < 8 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	return normalized, passwordHash, nil
}

func (s *service) sendVerification(ctx context.Context, account *models.AuthAccount) error {
	token, err := pkgauth.MintToken(s.jwtCfg, time.Now().UTC(), pkgauth.TokenPayload{
		AccountID: account.ID,
		Role:      account.Role,
		TokenType: enums.TokenTypeVerify,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	if err := s.notifier.SendVerification(ctx, account.Email, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending verification token")
	}
	return nil
}

func ensureEmailFree(ctx context.Context, accounts *Repository, email string) error {
	if _, err := accounts.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking account email")
	}
	return nil
}
