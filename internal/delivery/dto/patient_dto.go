package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=20"`
	Age     int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender  string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address string `json:"address" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
