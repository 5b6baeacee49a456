package repository

import (
	"go-hospital-encounter/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicineRepository interface {
	Search(db *gorm.DB, filter entity.MedicineFilter) ([]entity.Medicine, error)
	FindExistingIDs(db *gorm.DB, ids []int) ([]int, error)
}
