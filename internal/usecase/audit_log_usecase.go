package usecase

import (
	"context"

	"go-hospital-encounter/internal/converter"
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/repository"
	"go-hospital-encounter/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = apperror.NewNotFound("audit_log_not_found", "Audit log not found")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, page, limit int) (*dto.AuditLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, apperror.NewInternal("Failed to load audit logs", err)
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, apperror.NewInternal("Failed to load audit log", err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
