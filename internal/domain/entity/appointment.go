package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "Booked"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a patient's booking of a doctor's time slot.
// Rows are only ever created and status-transitioned, never deleted.
// A partial unique index on (doctor_id, date, time) where status is
// Booked backs the conflict check at write time.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time      string            `gorm:"type:time;not null" json:"time"`
	Reason    string            `gorm:"type:text" json:"reason,omitempty"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'Booked';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBooked checks if the appointment is still active
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentBooked
}

// IsCompleted checks if the appointment reached the completed state
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// OwnedByPatient checks if the given patient booked this appointment
func (a *Appointment) OwnedByPatient(patientID uuid.UUID) bool {
	return a.PatientID == patientID
}

// AssignedToDoctor checks if the given doctor is the assigned doctor
func (a *Appointment) AssignedToDoctor(doctorID uuid.UUID) bool {
	return a.DoctorID == doctorID
}

// CancellableBy checks if the actor may cancel this appointment:
// the owning patient, the assigned doctor, or an admin.
func (a *Appointment) CancellableBy(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RolePatient:
		return a.OwnedByPatient(actor.ID)
	case RoleDoctor:
		return a.AssignedToDoctor(actor.ID)
	default:
		return false
	}
}

// IsFutureDated reports whether the appointment date is strictly after
// the given day. Only the calendar date matters, not the clock time.
func (a *Appointment) IsFutureDated(today time.Time) bool {
	return a.Date.Truncate(24 * time.Hour).After(today.Truncate(24 * time.Hour))
}

// IsPastDated reports whether the appointment date is strictly before
// the given day.
func (a *Appointment) IsPastDated(today time.Time) bool {
	return a.Date.Truncate(24 * time.Hour).Before(today.Truncate(24 * time.Hour))
}
