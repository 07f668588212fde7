package entity

import (
	"time"

	"github.com/google/uuid"
)

// Treatment records the outcome of a completed appointment. Exactly one
// row exists per completed appointment, written in the same transaction
// as the status transition, and never updated afterwards.
type Treatment struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  string    `gorm:"type:text;not null" json:"prescription"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Treatment) TableName() string {
	return "treatments"
}
