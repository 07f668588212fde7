package repository

import (
	"hospital-appointment-system/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, department *entity.Department) error
	FindByID(db *gorm.DB, id int) (*entity.Department, error)
	FindAll(db *gorm.DB) ([]entity.Department, error)
	Update(db *gorm.DB, department *entity.Department) error
	Count(db *gorm.DB) (int64, error)
}
