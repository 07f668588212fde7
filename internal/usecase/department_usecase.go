package usecase

import (
	"context"
	"errors"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"
	"hospital-appointment-system/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDepartmentExists = errors.New("department name already exists")

type DepartmentUsecase interface {
	List(ctx context.Context) (*dto.DepartmentListResponse, error)
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
}

type departmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
	auditService   service.AuditService
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		db:             db,
		log:            log,
		departmentRepo: departmentRepo,
		auditService:   auditService,
	}
}

func (u *departmentUsecase) List(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *departmentUsecase) Create(ctx context.Context, actor entity.Actor, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.departmentRepo.Create(tx, department); err != nil {
		if isDuplicateKeyError(err, "departments_name") {
			return nil, ErrDepartmentExists
		}
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionDepartmentCreate, entity.JSON{
		"name": req.Name,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Department created: id=%d name=%s", department.ID, department.Name)
	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) Update(ctx context.Context, actor entity.Actor, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department %d: %+v", id, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	department.Name = req.Name
	department.Description = req.Description

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.departmentRepo.Update(tx, department); err != nil {
		if isDuplicateKeyError(err, "departments_name") {
			return nil, ErrDepartmentExists
		}
		u.log.Warnf("Failed to update department %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actor, entity.AuditActionDepartmentUpdate, entity.JSON{
		"department_id": id,
		"name":          req.Name,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}
