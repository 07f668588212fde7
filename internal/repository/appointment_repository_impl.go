package repository

import (
	"errors"
	"time"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.Department").Preload("Treatment").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBookedAt(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("doctor_id = ? AND date = ? AND time = ? AND status = ?",
		doctorID, date, clock, entity.AppointmentBooked).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient").Preload("Doctor.Department").Preload("Treatment")

	order := "date DESC, time DESC"
	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DateFrom != nil {
			query = query.Where("date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("date <= ?", *filter.DateTo)
		}
		// Upcoming listings read oldest first
		if filter.DateFrom != nil {
			order = "date ASC, time ASC"
		}
	}

	err := query.Order(order).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatusFromBooked atomically transitions the appointment out of
// Booked. Affected rows 0 means it was already Completed or Cancelled,
// which callers treat as an invalid-state error rather than a no-op.
func (r *appointmentRepository) UpdateStatusFromBooked(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentBooked).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountUpcomingBooked(db *gorm.DB, today time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("date >= ? AND status = ?", today, entity.AppointmentBooked).
		Count(&count).Error
	return count, err
}
