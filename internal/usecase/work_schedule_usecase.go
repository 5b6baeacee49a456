package usecase

import (
	"context"
	"strconv"
	"time"

	"go-hospital-encounter/internal/converter"
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	"go-hospital-encounter/internal/service"
	"go-hospital-encounter/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrScheduleNotFound = apperror.NewNotFound("work_schedule_not_found", "Work schedule not found")
	ErrScheduleNotOwned = apperror.NewForbidden("work_schedule_not_owned", "Work schedule does not belong to you")
	ErrScheduleRangeBad = apperror.NewValidation("invalid_schedule_range", "Schedule range is invalid", nil)
)

type WorkScheduleUsecase interface {
	ListSchedules(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleListRequest) (*dto.WorkScheduleListResponse, error)
	CreateSchedule(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error)
	UpdateSchedule(ctx context.Context, actor entity.Actor, scheduleID int, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actor entity.Actor, scheduleID int) error
}

type workScheduleUsecase struct {
	log       *logrus.Logger
	schedules gateway.ScheduleService
	validator *WorkScheduleValidator
	audit     service.AuditService
	location  *time.Location
	now       func() time.Time
}

// NewWorkScheduleUsecase builds the schedule usecase. "Today" for the
// past-date rule is taken in location.
func NewWorkScheduleUsecase(
	log *logrus.Logger,
	schedules gateway.ScheduleService,
	validator *WorkScheduleValidator,
	audit service.AuditService,
	location *time.Location,
) WorkScheduleUsecase {
	if location == nil {
		location = time.UTC
	}
	return &workScheduleUsecase{
		log:       log,
		schedules: schedules,
		validator: validator,
		audit:     audit,
		location:  location,
		now:       time.Now,
	}
}

func (u *workScheduleUsecase) ListSchedules(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleListRequest) (*dto.WorkScheduleListResponse, error) {
	var window entity.DateRange
	if req != nil {
		fields := make(map[string]string)
		if req.From != "" {
			from, err := time.Parse("2006-01-02", req.From)
			if err != nil {
				fields["from"] = "from must use YYYY-MM-DD format"
			}
			window.From = from
		}
		if req.To != "" {
			to, err := time.Parse("2006-01-02", req.To)
			if err != nil {
				fields["to"] = "to must use YYYY-MM-DD format"
			}
			window.To = to
		}
		if len(fields) == 0 && !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
			fields["to"] = "to must not be before from"
		}
		if len(fields) > 0 {
			return nil, ErrScheduleRangeBad.WithFields(fields)
		}
	}

	schedules, err := u.schedules.ListSchedules(ctx, actor.UserID, window)
	if err != nil {
		u.log.Warnf("Failed to list schedules for user %s: %+v", actor.UserID, err)
		return nil, err
	}

	return &dto.WorkScheduleListResponse{
		Schedules: converter.WorkSchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *workScheduleUsecase) CreateSchedule(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error) {
	if err := u.validator.Validate(req, ScheduleModeCreate, nil, u.today()); err != nil {
		return nil, err
	}

	schedule := &entity.WorkSchedule{UserID: actor.UserID}
	applyScheduleRequest(schedule, req)

	if err := u.schedules.CreateSchedule(ctx, schedule); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	response := converter.WorkScheduleToResponse(schedule)
	u.audit.LogCreate(ctx, actor, entity.AuditActionScheduleCreate, "work_schedule", strconv.Itoa(schedule.ID), response)
	return response, nil
}

func (u *workScheduleUsecase) UpdateSchedule(ctx context.Context, actor entity.Actor, scheduleID int, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error) {
	existing, err := u.findOwned(ctx, actor, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := u.validator.Validate(req, ScheduleModeEdit, existing, u.today()); err != nil {
		return nil, err
	}

	before := converter.WorkScheduleToResponse(existing)
	applyScheduleRequest(existing, req)

	if err := u.schedules.UpdateSchedule(ctx, existing); err != nil {
		u.log.Warnf("Failed to update schedule %d: %+v", scheduleID, err)
		return nil, err
	}

	after := converter.WorkScheduleToResponse(existing)
	u.audit.LogUpdate(ctx, actor, entity.AuditActionScheduleUpdate, "work_schedule", strconv.Itoa(scheduleID), before, after)
	return after, nil
}

func (u *workScheduleUsecase) DeleteSchedule(ctx context.Context, actor entity.Actor, scheduleID int) error {
	existing, err := u.findOwned(ctx, actor, scheduleID)
	if err != nil {
		return err
	}

	if err := u.validator.CheckMutable(existing); err != nil {
		return err
	}

	if err := u.schedules.DeleteSchedule(ctx, scheduleID); err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", scheduleID, err)
		return err
	}

	u.audit.LogDelete(ctx, actor, entity.AuditActionScheduleDelete, "work_schedule", strconv.Itoa(scheduleID), converter.WorkScheduleToResponse(existing))
	return nil
}

func (u *workScheduleUsecase) findOwned(ctx context.Context, actor entity.Actor, scheduleID int) (*entity.WorkSchedule, error) {
	schedule, err := u.schedules.GetSchedule(ctx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.UserID != actor.UserID {
		return nil, ErrScheduleNotOwned
	}
	return schedule, nil
}

func (u *workScheduleUsecase) today() time.Time {
	return u.now().In(u.location)
}

// applyScheduleRequest copies a validated request onto schedule.
func applyScheduleRequest(schedule *entity.WorkSchedule, req *dto.WorkScheduleRequest) {
	date, _ := time.Parse("2006-01-02", req.Date)
	schedule.Date = date
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.Type = entity.WorkScheduleType(req.Type)
	schedule.Notes = blankToNil(req.Notes)
}
