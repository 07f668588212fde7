package service

import (
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit trail entries. Record takes the caller's
// transaction handle so the entry commits or rolls back together with
// the mutation it describes.
type AuditService interface {
	Record(tx *gorm.DB, actor *entity.Actor, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(tx *gorm.DB, actor *entity.Actor, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}
	if actor != nil {
		id := actor.ID
		auditLog.ActorID = &id
		auditLog.ActorRole = string(actor.Role)
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
