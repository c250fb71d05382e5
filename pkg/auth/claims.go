package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	AccountID uuid.UUID
	Role      enums.Role
	TokenType enums.TokenType
	JTI       string
}

// TokenClaims represents the typed JWT issued to clients. TokenType scopes the
// token to one surface: ACCESS for the API, VERIFY and RESET for the one-shot
// email flows.
type TokenClaims struct {
	AccountID uuid.UUID       `json:"account_id"`
	Role      enums.Role      `json:"role"`
	TokenType enums.TokenType `json:"token_type"`
	jwt.RegisteredClaims
}
