package repository

import (
	"errors"

	"go-hospital-encounter/internal/domain/entity"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workScheduleRepository struct{}

func NewWorkScheduleRepository() domainRepo.WorkScheduleRepository {
	return &workScheduleRepository{}
}

func (r *workScheduleRepository) Create(db *gorm.DB, schedule *entity.WorkSchedule) error {
	return db.Create(schedule).Error
}

func (r *workScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.WorkSchedule, error) {
	var schedule entity.WorkSchedule
	err := db.Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *workScheduleRepository) FindByUser(db *gorm.DB, userID uuid.UUID, window entity.DateRange) ([]entity.WorkSchedule, error) {
	query := db.Where("user_id = ?", userID)
	if !window.From.IsZero() {
		query = query.Where("date >= ?", window.From.Format("2006-01-02"))
	}
	if !window.To.IsZero() {
		query = query.Where("date <= ?", window.To.Format("2006-01-02"))
	}

	var schedules []entity.WorkSchedule
	if err := query.Order("date ASC, start_time ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *workScheduleRepository) Update(db *gorm.DB, schedule *entity.WorkSchedule) error {
	return db.Save(schedule).Error
}

func (r *workScheduleRepository) Delete(db *gorm.DB, id int) error {
	return db.Where("id = ?", id).Delete(&entity.WorkSchedule{}).Error
}
