package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/api/responses"
	pkgauth "github.com/mercato-app/mercato-backend/pkg/auth"
	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	pkgerrors "github.com/mercato-app/mercato-backend/pkg/errors"
	"github.com/mercato-app/mercato-backend/pkg/logger"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

// ActorResolver turns an account id into a request actor.
type ActorResolver interface {
	ResolveActor(ctx context.Context, accountID uuid.UUID) (visibility.Actor, error)
}

// Auth validates a bearer token, resolves the account behind it, and seeds
// the request context with the actor. Only ACCESS tokens pass; the one-shot
// VERIFY and RESET tokens are rejected here regardless of validity.
func Auth(cfg config.JWTConfig, resolver ActorResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseToken(cfg, token)
			if err != nil {
				if errors.Is(err, pkgauth.ErrTokenExpired) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}
			if claims.TokenType != enums.TokenTypeAccess {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), claims.AccountID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if !actor.IsVerified {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "email not verified"))
				return
			}
			if actor.Status == enums.AccountStatusRejected {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account rejected"))
				return
			}

			ctx := WithActor(r.Context(), actor)
			if logg != nil {
				ctx = logg.WithActorID(ctx, actor.AuthID.String())
				ctx = logg.WithActorRole(ctx, string(actor.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
