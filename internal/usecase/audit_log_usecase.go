package usecase

import (
	"context"

	"hospital-appointment-system/internal/converter"
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// auditLogPageSize caps the admin audit feed at the most recent entries.
const auditLogPageSize = 100

type AuditLogUsecase interface {
	ListRecent(ctx context.Context) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{db: db, log: log, auditLogRepo: auditLogRepo}
}

func (u *auditLogUsecase) ListRecent(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindRecent(u.db.WithContext(ctx), auditLogPageSize)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
