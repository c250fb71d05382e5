package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/config"
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrTokenExpired signals a structurally valid token past its expiry.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid signals any other parse or validation failure.
var ErrTokenInvalid = errors.New("invalid token")

// MintToken issues a signed JWT for the provided payload. The TTL depends on
// the payload's token type.
func MintToken(cfg config.JWTConfig, now time.Time, payload TokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if payload.AccountID == uuid.Nil {
		return "", fmt.Errorf("account id is required")
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", payload.Role)
	}
	if !payload.TokenType.IsValid() {
		return "", fmt.Errorf("invalid token type %q", payload.TokenType)
	}

	ttl, err := ttlFor(cfg, payload.TokenType)
	if err != nil {
		return "", err
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := TokenClaims{
		AccountID: payload.AccountID,
		Role:      payload.Role,
		TokenType: payload.TokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseToken validates the JWT string and returns typed claims. The caller is
// expected to check the claims' TokenType against the surface being served.
// Expiry and any other validation failure map to distinct sentinel errors so
// the transport layer can answer with distinct messages.
func ParseToken(cfg config.JWTConfig, tokenString string) (*TokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}
	if !claims.TokenType.IsValid() {
		return nil, fmt.Errorf("%w: missing token type", ErrTokenInvalid)
	}

	return claims, nil
}

func ttlFor(cfg config.JWTConfig, tokenType enums.TokenType) (time.Duration, error) {
	var ttl time.Duration
	switch tokenType {
	case enums.TokenTypeAccess:
		ttl = cfg.AccessTTL()
	case enums.TokenTypeVerify:
		ttl = cfg.VerifyTTL()
	case enums.TokenTypeReset:
		ttl = cfg.ResetTTL()
	default:
		return 0, fmt.Errorf("invalid token type %q", tokenType)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("ttl for %s tokens must be positive", tokenType)
	}
	return ttl, nil
}
