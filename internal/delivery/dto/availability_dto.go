package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpsertAvailabilityRequest declares a doctor's working window for one
// date. A second write for the same date overwrites the stored window.
type UpsertAvailabilityRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID          int       `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AvailabilityListResponse struct {
	Slots []AvailabilityResponse `json:"slots"`
	Total int                    `json:"total"`
}
