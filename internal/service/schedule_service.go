package service

import (
	"context"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduleService stores work schedule entries. A missing entry is reported
// as (nil, nil) like the repositories do.
type ScheduleService struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo domainRepo.WorkScheduleRepository
}

var _ gateway.ScheduleService = (*ScheduleService)(nil)

func NewScheduleService(db *gorm.DB, log *logrus.Logger, scheduleRepo domainRepo.WorkScheduleRepository) *ScheduleService {
	return &ScheduleService{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
	}
}

func (s *ScheduleService) ListSchedules(ctx context.Context, ownerID uuid.UUID, window entity.DateRange) ([]entity.WorkSchedule, error) {
	schedules, err := s.scheduleRepo.FindByUser(s.db.WithContext(ctx), ownerID, window)
	if err != nil {
		s.log.Warnf("Failed to list schedules for user %s: %+v", ownerID, err)
		return nil, translateError(err, "Failed to list work schedules")
	}
	return schedules, nil
}

func (s *ScheduleService) GetSchedule(ctx context.Context, id int) (*entity.WorkSchedule, error) {
	schedule, err := s.scheduleRepo.FindByID(s.db.WithContext(ctx), id)
	if err != nil {
		s.log.Warnf("Failed to find schedule %d: %+v", id, err)
		return nil, translateError(err, "Failed to load work schedule")
	}
	return schedule, nil
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error {
	if err := s.scheduleRepo.Create(s.db.WithContext(ctx), schedule); err != nil {
		s.log.Warnf("Failed to create schedule: %+v", err)
		return translateError(err, "Failed to create work schedule")
	}
	return nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error {
	if err := s.scheduleRepo.Update(s.db.WithContext(ctx), schedule); err != nil {
		s.log.Warnf("Failed to update schedule %d: %+v", schedule.ID, err)
		return translateError(err, "Failed to update work schedule")
	}
	return nil
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, id int) error {
	if err := s.scheduleRepo.Delete(s.db.WithContext(ctx), id); err != nil {
		s.log.Warnf("Failed to delete schedule %d: %+v", id, err)
		return translateError(err, "Failed to delete work schedule")
	}
	return nil
}
