package repository

import (
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	CountActive(db *gorm.DB) (int64, error)
}
