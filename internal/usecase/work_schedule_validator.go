package usecase

import (
	"time"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/pkg/apperror"
	"go-hospital-encounter/pkg/validator"
)

// ScheduleMode tells the validator which rules apply.
type ScheduleMode int

const (
	ScheduleModeCreate ScheduleMode = iota
	ScheduleModeEdit
)

var (
	ErrApprovedLeaveLocked = apperror.NewForbidden("approved_leave_locked", "Approved leave cannot be changed")
	ErrScheduleInvalid     = apperror.NewValidation("invalid_work_schedule", "Work schedule is invalid", nil)
)

// WorkScheduleValidator checks a candidate work schedule entry before it is
// sent anywhere. It has no side effects.
type WorkScheduleValidator struct {
	validator *validator.CustomValidator
}

func NewWorkScheduleValidator(v *validator.CustomValidator) *WorkScheduleValidator {
	return &WorkScheduleValidator{validator: v}
}

// Validate returns nil, ErrApprovedLeaveLocked, or ErrScheduleInvalid
// carrying one message per offending field. today is compared by calendar
// date in its own location.
func (v *WorkScheduleValidator) Validate(candidate *dto.WorkScheduleRequest, mode ScheduleMode, existing *entity.WorkSchedule, today time.Time) error {
	if mode == ScheduleModeEdit {
		if err := v.CheckMutable(existing); err != nil {
			return err
		}
	}
	if candidate == nil {
		return ErrScheduleInvalid.WithFields(map[string]string{"date": "date is required"})
	}

	fields := make(map[string]string)
	if err := v.validator.Validate(candidate); err != nil {
		fields = v.validator.FormatValidationErrors(err)
	}

	_, startBad := fields["start_time"]
	_, endBad := fields["end_time"]
	if !startBad && !endBad {
		start, startErr := parseClockTime(candidate.StartTime)
		end, endErr := parseClockTime(candidate.EndTime)
		if startErr == nil && endErr == nil && !end.After(start) {
			fields["end_time"] = "end_time must be after start_time"
		}
	}

	if mode == ScheduleModeCreate {
		if _, dateBad := fields["date"]; !dateBad {
			if date, err := time.Parse("2006-01-02", candidate.Date); err == nil && date.Before(calendarDate(today)) {
				fields["date"] = "date cannot be in the past"
			}
		}
	}

	if len(fields) > 0 {
		return ErrScheduleInvalid.WithFields(fields)
	}
	return nil
}

// CheckMutable rejects any change to an entry the doctor does not control.
func (v *WorkScheduleValidator) CheckMutable(existing *entity.WorkSchedule) error {
	if existing != nil && existing.IsLocked() {
		return ErrApprovedLeaveLocked
	}
	return nil
}

// parseClockTime parses HH:MM or HH:MM:SS onto a common reference date.
func parseClockTime(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// calendarDate strips the clock from t, keeping t's own calendar date, and
// returns it at UTC midnight so it compares with parsed YYYY-MM-DD values.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
