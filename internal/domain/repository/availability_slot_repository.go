package repository

import (
	"time"

	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlotRepository interface {
	// Upsert writes the slot for (doctor, date), overwriting the window
	// of an existing row instead of creating a second one.
	Upsert(db *gorm.DB, slot *entity.AvailabilitySlot) error
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.AvailabilitySlot, error)
	FindByDoctorFrom(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.AvailabilitySlot, error)
	FindAvailableInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilitySlot, error)
}
