package dto

import (
	"time"

	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    *uuid.UUID  `json:"user_id"`
	UserName  string      `json:"user_name,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
