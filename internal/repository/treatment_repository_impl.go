package repository

import (
	"errors"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentRepository struct{}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{}
}

func (r *treatmentRepository) Create(db *gorm.DB, treatment *entity.Treatment) error {
	return db.Create(treatment).Error
}

func (r *treatmentRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := db.Where("appointment_id = ?", appointmentID).First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}
