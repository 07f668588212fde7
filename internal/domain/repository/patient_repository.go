package repository

import (
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, error)
	FindDistinctByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	CountActive(db *gorm.DB) (int64, error)
}
