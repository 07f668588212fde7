package repository

import (
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(db *gorm.DB, treatment *entity.Treatment) error
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Treatment, error)
}
