package service

import (
	"context"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records committed workflow writes. Audit failures are
// logged and never fail the write they describe.
type AuditService interface {
	LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{})
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{}) {
	s.write(ctx, actor, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.write(ctx, actor, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{}) {
	s.write(ctx, actor, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, actor entity.Actor, action, entityName, entityID string, oldValue, newValue interface{}) {
	userID := actor.UserID
	auditLog := &entity.AuditLog{
		UserID: &userID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s %s: %+v", action, entityID, err)
	}
}
