package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	Phone           string `json:"phone" validate:"omitempty,min=7,max=20"`
	DepartmentID    int    `json:"department_id" validate:"required,min=1"`
	Experience      int    `json:"experience" validate:"omitempty,gte=0,lte=70"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Phone           string `json:"phone" validate:"omitempty,min=7,max=20"`
	DepartmentID    int    `json:"department_id" validate:"required,min=1"`
	Experience      int    `json:"experience" validate:"omitempty,gte=0,lte=70"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone,omitempty"`
	DepartmentID    int                 `json:"department_id"`
	Department      *DepartmentResponse `json:"department,omitempty"`
	Experience      int                 `json:"experience"`
	ConsultationFee decimal.Decimal     `json:"consultation_fee"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
