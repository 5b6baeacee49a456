package repository

import (
	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	UpdateFields(db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.MedicalRecord, error)
}
