package repository

import (
	"errors"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"gorm.io/gorm"
)

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(db *gorm.DB, department *entity.Department) error {
	return db.Create(department).Error
}

func (r *departmentRepository) FindByID(db *gorm.DB, id int) (*entity.Department, error) {
	var department entity.Department
	err := db.Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(db *gorm.DB) ([]entity.Department, error) {
	var departments []entity.Department
	err := db.Order("name ASC").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(db *gorm.DB, department *entity.Department) error {
	return db.Omit("Doctors").Save(department).Error
}

func (r *departmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Department{}).Count(&count).Error
	return count, err
}
