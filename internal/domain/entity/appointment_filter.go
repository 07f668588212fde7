package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    AppointmentStatus // empty means any status
	DateFrom  *time.Time        // inclusive
	DateTo    *time.Time        // inclusive
}

// DoctorFilter narrows doctor directory queries.
type DoctorFilter struct {
	Search       string // case-insensitive substring over name/email
	DepartmentID int    // 0 means any department
	ActiveOnly   bool
}

// PatientFilter narrows patient directory queries.
type PatientFilter struct {
	Search string // case-insensitive substring over name/email/phone
}
