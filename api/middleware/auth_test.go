package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/mercato-app/mercato-backend/pkg/auth"
	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/enums"
	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

type stubResolver struct {
	actor visibility.Actor
	err   error
}

func (s *stubResolver) ResolveActor(_ context.Context, accountID uuid.UUID) (visibility.Actor, error) {
	if s.err != nil {
		return visibility.Actor{}, s.err
	}
	actor := s.actor
	actor.AuthID = accountID
	return actor, nil
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "middleware-test-secret",
		Issuer:           "mercato-test",
		AccessTTLMinutes: 5,
		VerifyTTLMinutes: 5,
		ResetTTLMinutes:  5,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, tokenType enums.TokenType) (string, uuid.UUID) {
	t.Helper()

	accountID := uuid.New()
	token, err := pkgauth.MintToken(cfg, time.Now().UTC(), pkgauth.TokenPayload{
		AccountID: accountID,
		Role:      enums.RoleUser,
		TokenType: tokenType,
	})
	require.NoError(t, err)
	return token, accountID
}

func runAuth(cfg config.JWTConfig, resolver ActorResolver, token string) (*httptest.ResponseRecorder, visibility.Actor) {
	var captured visibility.Actor
	handler := Auth(cfg, resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthSeedsActorFromAccessToken(t *testing.T) {
	cfg := authTestConfig()
	token, accountID := mintTestToken(t, cfg, enums.TokenTypeAccess)
	resolver := &stubResolver{actor: visibility.Actor{
		Role:       enums.RoleUser,
		Status:     enums.AccountStatusApproved,
		IsVerified: true,
	}}

	rec, actor := runAuth(cfg, resolver, token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, actor.AuthID)
	assert.Equal(t, enums.RoleUser, actor.Role)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	cfg := authTestConfig()
	rec, _ := runAuth(cfg, &stubResolver{}, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing credentials")
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	cfg := authTestConfig()
	rec, _ := runAuth(cfg, &stubResolver{}, "not-a-jwt")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthRejectsOneShotTokenTypes(t *testing.T) {
	cfg := authTestConfig()
	for _, tokenType := range []enums.TokenType{enums.TokenTypeVerify, enums.TokenTypeReset} {
		token, _ := mintTestToken(t, cfg, tokenType)
		rec, _ := runAuth(cfg, &stubResolver{}, token)

		require.Equal(t, http.StatusUnauthorized, rec.Code, string(tokenType))
		assert.Contains(t, rec.Body.String(), "invalid token")
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := authTestConfig()
	accountID := uuid.New()
	token, err := pkgauth.MintToken(cfg, time.Now().UTC().Add(-time.Hour), pkgauth.TokenPayload{
		AccountID: accountID,
		Role:      enums.RoleUser,
		TokenType: enums.TokenTypeAccess,
	})
	require.NoError(t, err)

	rec, _ := runAuth(cfg, &stubResolver{}, token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuthBlocksUnverifiedAndRejectedAccounts(t *testing.T) {
	cfg := authTestConfig()

	token, _ := mintTestToken(t, cfg, enums.TokenTypeAccess)
	rec, _ := runAuth(cfg, &stubResolver{actor: visibility.Actor{
		Role:   enums.RoleUser,
		Status: enums.AccountStatusApproved,
	}}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "email not verified")

	token, _ = mintTestToken(t, cfg, enums.TokenTypeAccess)
	rec, _ = runAuth(cfg, &stubResolver{actor: visibility.Actor{
		Role:       enums.RoleVendor,
		Status:     enums.AccountStatusRejected,
		IsVerified: true,
	}}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "account rejected")
}

func TestBearerTokenHeaderForms(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer  abc123 ")
	assert.Equal(t, "abc123", bearerToken(req))

	req.Header.Set("Authorization", "abc123")
	assert.Equal(t, "abc123", bearerToken(req))

	req.Header.Del("Authorization")
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", strings.ToUpper("bearer ")+"xyz")
	assert.Equal(t, "xyz", bearerToken(req))
}
