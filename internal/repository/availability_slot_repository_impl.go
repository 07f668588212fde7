package repository

import (
	"errors"
	"time"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilitySlotRepository struct{}

func NewAvailabilitySlotRepository() domainRepo.AvailabilitySlotRepository {
	return &availabilitySlotRepository{}
}

// Upsert relies on the (doctor_id, date) unique index: a second write
// for the same day updates the window in place.
func (r *availabilitySlotRepository) Upsert(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_available", "updated_at"}),
	}).Create(slot).Error
}

func (r *availabilitySlotRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindByDoctorFrom(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND date >= ?", doctorID, from).
		Order("date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) FindAvailableInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND date BETWEEN ? AND ? AND is_available = ?", doctorID, from, to, true).
		Order("date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
