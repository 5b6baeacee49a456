package repository

import (
	"go-hospital-encounter/internal/domain/entity"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"gorm.io/gorm"
)

const defaultMedicineSearchLimit = 50

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Search(db *gorm.DB, filter entity.MedicineFilter) ([]entity.Medicine, error) {
	query := db.Model(&entity.Medicine{}).Preload("Categories")

	if filter.Query != "" {
		query = query.Where("medicines.name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.CategoryID > 0 {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("medicine_category_links").
			Select("medicine_id").
			Where("medicine_category_id = ?", filter.CategoryID)
		query = query.Where("medicines.id IN (?)", sub)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("medicines.id IN ?", filter.IDs)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMedicineSearchLimit
	}
	// An explicit ID list is never truncated.
	if len(filter.IDs) > limit {
		limit = len(filter.IDs)
	}

	var medicines []entity.Medicine
	if err := query.Order("medicines.name ASC").Limit(limit).Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *medicineRepository) FindExistingIDs(db *gorm.DB, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int
	err := db.Model(&entity.Medicine{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}
