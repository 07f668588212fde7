package repository

import (
	"errors"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminRepository struct{}

func NewAdminRepository() domainRepo.AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Create(db *gorm.DB, admin *entity.Admin) error {
	return db.Create(admin).Error
}

func (r *adminRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	err := db.Where("id = ?", id).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(db *gorm.DB, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Admin{}).Count(&count).Error
	return count, err
}
