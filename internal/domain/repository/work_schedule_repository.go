package repository

import (
	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.WorkSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.WorkSchedule, error)
	FindByUser(db *gorm.DB, userID uuid.UUID, window entity.DateRange) ([]entity.WorkSchedule, error)
	Update(db *gorm.DB, schedule *entity.WorkSchedule) error
	Delete(db *gorm.DB, id int) error
}
