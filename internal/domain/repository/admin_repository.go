package repository

import (
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admin, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Admin, error)
	Count(db *gorm.DB) (int64, error)
}
