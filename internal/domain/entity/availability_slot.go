package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot represents a doctor's declared working window on a date.
// At most one row exists per (doctor, date); later writes overwrite it.
type AvailabilitySlot struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_slot_doctor_date" json:"doctor_id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uq_slot_doctor_date" json:"date"`
	StartTime   string    `gorm:"type:time;not null" json:"start_time"`
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// Covers reports whether a clock time (HH:MM) falls inside the window.
// Start is inclusive, end exclusive. Times are zero-padded so string
// comparison orders correctly.
func (s *AvailabilitySlot) Covers(clock string) bool {
	return s.IsAvailable && clock >= s.StartTime && clock < s.EndTime
}
