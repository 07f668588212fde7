package repository

import (
	"time"

	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindBookedAt returns the Booked appointment occupying the exact
	// (doctor, date, time) slot, or nil. Cancelled and Completed rows
	// do not occupy the slot.
	FindBookedAt(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string) (*entity.Appointment, error)
	FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatusFromBooked transitions the row to the given status only
	// while it is still Booked. Returns affected rows: 0 means the
	// appointment already left the Booked state.
	UpdateStatusFromBooked(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountUpcomingBooked(db *gorm.DB, today time.Time) (int64, error)
}
