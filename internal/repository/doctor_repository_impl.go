package repository

import (
	"errors"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Department").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindAll returns doctors matching the filter. Search is a
// case-insensitive substring match over name and email.
func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.Preload("Department")

	if filter != nil {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
		}
		if filter.DepartmentID != 0 {
			query = query.Where("department_id = ?", filter.DepartmentID)
		}
		if filter.ActiveOnly {
			query = query.Where("status = ?", entity.AccountActive)
		}
	}

	err := query.Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Department", "Appointments", "Availability").Save(doctor).Error
}

func (r *doctorRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("status = ?", entity.AccountActive).Count(&count).Error
	return count, err
}
