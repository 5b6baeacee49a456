package repository

import (
	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
}
