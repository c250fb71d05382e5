package auth

import "github.com/mercato-app/mercato-backend/pkg/enums"

// RegisterUserRequest contains the payload for shopper onboarding.
type RegisterUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	City            string `json:"city" validate:"required"`
	PostalCode      string `json:"postal_code" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// RegisterVendorRequest contains the payload for storefront onboarding.
type RegisterVendorRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required"`
	PickupAddress string `json:"pickup_address" validate:"required"`
}

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted access token and the account's role.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	Role        enums.Role `json:"role"`
}

// VerifyRequest carries the emailed verification token.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResendOTPRequest asks for a fresh verification token.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequestRequest starts the password reset flow.
type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
