package repository

import (
	"errors"

	"go-hospital-encounter/internal/domain/entity"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateStatus moves the appointment to status `to` ONLY if it is still in `from`.
// Returns affected rows: 1 = success, 0 = status changed underneath us.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
