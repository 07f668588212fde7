package usecase

import (
	"context"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"
	"hospital-appointment-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientManagementUsecase interface {
	List(ctx context.Context, search string) (*dto.PatientListResponse, error)
	Deactivate(ctx context.Context, actor entity.Actor, patientID uuid.UUID) error
	GetProfile(ctx context.Context, actor entity.Actor) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error)
}

type patientManagementUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientManagementUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientManagementUsecase {
	return &patientManagementUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// List returns all patients for the admin directory. Search matches
// name, email or phone, case-insensitively.
func (u *patientManagementUsecase) List(ctx context.Context, search string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx), &entity.PatientFilter{Search: search})
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// Deactivate flips the patient's account to inactive. The row and its
// appointment history stay in place.
func (u *patientManagementUsecase) Deactivate(ctx context.Context, actor entity.Actor, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrAccountNotFound
	}

	patient.Deactivate()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to deactivate patient %s: %+v", patientID, err)
		return err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionPatientDeactivate, entity.JSON{
		"patient_id": patientID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Patient deactivated: id=%s", patientID)
	return nil
}

func (u *patientManagementUsecase) GetProfile(ctx context.Context, actor entity.Actor) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", actor.ID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrAccountNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// UpdateProfile lets a patient edit their own demographics. Email and
// password are not editable here.
func (u *patientManagementUsecase) UpdateProfile(ctx context.Context, actor entity.Actor, req *dto.UpdateProfileRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", actor.ID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrAccountNotFound
	}

	patient.Name = req.Name
	patient.Phone = req.Phone
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.Address = req.Address

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", actor.ID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionPatientProfileUpdate, entity.JSON{
		"patient_id": actor.ID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}
