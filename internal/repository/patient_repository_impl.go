package repository

import (
	"errors"

	"hospital-appointment-system/internal/domain/entity"
	domainRepo "hospital-appointment-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByEmail(db *gorm.DB, email string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// FindAll returns patients matching the filter. Search is a
// case-insensitive substring match over name, email and phone.
func (r *patientRepository) FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db

	if filter != nil && filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	err := query.Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindDistinctByDoctor returns the distinct set of patients that ever
// held an appointment with the doctor, regardless of status.
func (r *patientRepository) FindDistinctByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.
		Distinct("patients.*").
		Joins("JOIN appointments ON appointments.patient_id = patients.id").
		Where("appointments.doctor_id = ?", doctorID).
		Order("patients.name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Appointments").Save(patient).Error
}

func (r *patientRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("status = ?", entity.AccountActive).Count(&count).Error
	return count, err
}
