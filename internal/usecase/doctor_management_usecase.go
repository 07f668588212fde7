package usecase

import (
	"context"
	"errors"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"
	"hospital-appointment-system/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidFee         = errors.New("invalid consultation fee")
)

type DoctorManagementUsecase interface {
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Deactivate(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) error
	List(ctx context.Context, search string) (*dto.DoctorListResponse, error)
	Browse(ctx context.Context, search string, departmentID int) (*dto.DoctorListResponse, error)
}

type doctorManagementUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	doctorRepo     repository.DoctorRepository
	departmentRepo repository.DepartmentRepository
	auditService   service.AuditService
}

func NewDoctorManagementUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
) DoctorManagementUsecase {
	return &doctorManagementUsecase{
		db:             db,
		log:            log,
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
		auditService:   auditService,
	}
}

func (u *doctorManagementUsecase) Create(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find department %d: %+v", req.DepartmentID, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	fee, err := parseFee(req.ConsultationFee)
	if err != nil {
		return nil, ErrInvalidFee
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:            req.Name,
		Email:           req.Email,
		Password:        string(hashedPassword),
		Phone:           req.Phone,
		DepartmentID:    req.DepartmentID,
		Experience:      req.Experience,
		ConsultationFee: fee,
		Status:          entity.AccountActive,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "department") {
			return nil, ErrDepartmentNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id": doctor.ID.String(),
		"email":     doctor.Email,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	doctor.Department = *department
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorManagementUsecase) Update(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	fee, err := parseFee(req.ConsultationFee)
	if err != nil {
		return nil, ErrInvalidFee
	}

	doctor.Name = req.Name
	doctor.Phone = req.Phone
	doctor.DepartmentID = req.DepartmentID
	doctor.Experience = req.Experience
	if req.ConsultationFee != "" {
		doctor.ConsultationFee = fee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctorID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	doctor.Department = *department
	return converter.DoctorToResponse(doctor), nil
}

// Deactivate flips the doctor's account to inactive. The row and its
// appointment history stay in place.
func (u *doctorManagementUsecase) Deactivate(ctx context.Context, actor entity.Actor, doctorID uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	doctor.Deactivate()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", doctorID, err)
		return err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionDoctorDeactivate, entity.JSON{
		"doctor_id": doctorID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Doctor deactivated: id=%s", doctorID)
	return nil
}

// List returns all doctors for the admin directory. Search matches
// name or email, case-insensitively.
func (u *doctorManagementUsecase) List(ctx context.Context, search string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), &entity.DoctorFilter{Search: search})
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// Browse returns active doctors only, for the patient-facing directory.
func (u *doctorManagementUsecase) Browse(ctx context.Context, search string, departmentID int) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), &entity.DoctorFilter{
		Search:       search,
		DepartmentID: departmentID,
		ActiveOnly:   true,
	})
	if err != nil {
		u.log.Warnf("Failed to browse doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func parseFee(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
