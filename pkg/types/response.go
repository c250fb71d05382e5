package types

import "github.com/mercato-app/mercato-backend/pkg/pagination"

// SuccessEnvelope is the uniform body for successful responses.
type SuccessEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
}

// ErrorEnvelope is the uniform body for failed responses. No internal
// identifiers or stack traces ever cross this boundary.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
