package repository

import (
	"errors"

	"go-hospital-encounter/internal/domain/entity"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recordFieldColumns are the only columns an update may touch.
var recordFieldColumns = []string{
	"symptoms", "diagnosis", "treatment_plan", "doctor_notes",
	"blood_pressure", "heart_rate", "temperature", "respiratory_rate", "weight",
}

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit("Prescriptions").Create(record).Error
}

// UpdateFields writes the clinical fields only. Nil optional fields are
// written as NULL because the columns are selected explicitly.
func (r *medicalRecordRepository) UpdateFields(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Model(record).Select(recordFieldColumns).Updates(record).Error
}

func (r *medicalRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := withPrescriptions(db).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := withPrescriptions(db).Where("appointment_id = ?", appointmentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func withPrescriptions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Prescriptions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date_prescribed ASC, created_at ASC")
		}).
		Preload("Prescriptions.Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Prescriptions.Items.Medicine")
}
