package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// LoginRequest carries the credential plus an explicit role tag that
// selects which account table the lookup runs against.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin doctor patient"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Age      int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address  string `json:"address" validate:"omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionResponse describes the authenticated account behind a token.
type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
