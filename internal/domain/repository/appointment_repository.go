package repository

import (
	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
}
