package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string    `json:"time" validate:"required,datetime=15:04"`
	Reason   string    `json:"reason" validate:"omitempty,max=2000"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required"`
	Prescription string `json:"prescription" validate:"required"`
	Notes        string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID          `json:"id"`
	PatientID uuid.UUID          `json:"patient_id"`
	DoctorID  uuid.UUID          `json:"doctor_id"`
	Date      string             `json:"date"`
	Time      string             `json:"time"`
	Reason    string             `json:"reason,omitempty"`
	Status    string             `json:"status"`
	Patient   *PatientResponse   `json:"patient,omitempty"`
	Doctor    *DoctorResponse    `json:"doctor,omitempty"`
	Treatment *TreatmentResponse `json:"treatment,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// CompleteAppointmentResponse carries the completed appointment plus an
// informational notice when the visit was closed after its date.
type CompleteAppointmentResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Notice      string               `json:"notice,omitempty"`
}

type TreatmentResponse struct {
	ID            int       `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Diagnosis     string    `json:"diagnosis"`
	Prescription  string    `json:"prescription"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PatientHistoryResponse groups a patient's completed appointments with
// the patient they belong to, for the doctor-facing history view.
type PatientHistoryResponse struct {
	Patient      *PatientResponse      `json:"patient"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
