package repository

import (
	"errors"

	"go-hospital-encounter/internal/domain/entity"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

// Create inserts the prescription and its items. Item medicines are
// references only and are never upserted.
func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Items.Medicine").Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Items.Medicine").
		Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}
