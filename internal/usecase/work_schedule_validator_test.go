package usecase

import (
	"errors"
	"testing"
	"time"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/pkg/apperror"
	"go-hospital-encounter/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduleToday = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newScheduleValidator() *WorkScheduleValidator {
	return NewWorkScheduleValidator(validator.NewValidator())
}

func validScheduleRequest() *dto.WorkScheduleRequest {
	return &dto.WorkScheduleRequest{
		Date:      "2026-03-11",
		StartTime: "08:00",
		EndTime:   "12:00",
		Type:      string(entity.WorkScheduleWorking),
	}
}

func TestWorkScheduleValidator_ValidCreate(t *testing.T) {
	err := newScheduleValidator().Validate(validScheduleRequest(), ScheduleModeCreate, nil, scheduleToday)
	assert.NoError(t, err)
}

func TestWorkScheduleValidator_AcceptsSeconds(t *testing.T) {
	req := validScheduleRequest()
	req.StartTime = "08:00:00"
	req.EndTime = "08:00:30"

	assert.NoError(t, newScheduleValidator().Validate(req, ScheduleModeCreate, nil, scheduleToday))
}

func TestWorkScheduleValidator_EndNotAfterStart(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "end before start", start: "14:00", end: "09:00"},
		{name: "equal times", start: "09:00", end: "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validScheduleRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			err := newScheduleValidator().Validate(req, ScheduleModeCreate, nil, scheduleToday)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrScheduleInvalid))
			fields := apperror.FieldsOf(err)
			assert.Equal(t, "end_time must be after start_time", fields["end_time"])
			assert.NotContains(t, fields, "start_time")
		})
	}
}

func TestWorkScheduleValidator_PastDateOnlyRejectedOnCreate(t *testing.T) {
	req := validScheduleRequest()
	req.Date = "2026-03-09"

	err := newScheduleValidator().Validate(req, ScheduleModeCreate, nil, scheduleToday)
	require.Error(t, err)
	assert.Equal(t, "date cannot be in the past", apperror.FieldsOf(err)["date"])

	existing := &entity.WorkSchedule{ID: 4, Type: entity.WorkScheduleWorking}
	assert.NoError(t, newScheduleValidator().Validate(req, ScheduleModeEdit, existing, scheduleToday))
}

func TestWorkScheduleValidator_TodayIsNotPast(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	lateToday := time.Date(2026, 3, 10, 23, 30, 0, 0, jakarta)

	req := validScheduleRequest()
	req.Date = "2026-03-10"

	assert.NoError(t, newScheduleValidator().Validate(req, ScheduleModeCreate, nil, lateToday))
}

func TestWorkScheduleValidator_TodayUsesLocalCalendarDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 01:00 on the 11th in Jakarta is still the 10th in UTC.
	earlyMorning := time.Date(2026, 3, 11, 1, 0, 0, 0, jakarta)

	req := validScheduleRequest()
	req.Date = "2026-03-10"

	err := newScheduleValidator().Validate(req, ScheduleModeCreate, nil, earlyMorning)
	require.Error(t, err)
	assert.Contains(t, apperror.FieldsOf(err), "date")
}

func TestWorkScheduleValidator_ReportsEveryField(t *testing.T) {
	err := newScheduleValidator().Validate(&dto.WorkScheduleRequest{}, ScheduleModeCreate, nil, scheduleToday)

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	fields := apperror.FieldsOf(err)
	assert.Equal(t, "date is required", fields["date"])
	assert.Equal(t, "start_time is required", fields["start_time"])
	assert.Equal(t, "end_time is required", fields["end_time"])
	assert.Equal(t, "type is required", fields["type"])
}

func TestWorkScheduleValidator_MalformedValues(t *testing.T) {
	req := &dto.WorkScheduleRequest{
		Date:      "11/03/2026",
		StartTime: "8:00",
		EndTime:   "25:00",
		Type:      string(entity.WorkScheduleApprovedLeave),
	}

	err := newScheduleValidator().Validate(req, ScheduleModeCreate, nil, scheduleToday)

	require.Error(t, err)
	fields := apperror.FieldsOf(err)
	assert.Equal(t, "date must use YYYY-MM-DD format", fields["date"])
	assert.Equal(t, "start_time must use HH:MM or HH:MM:SS format", fields["start_time"])
	assert.Equal(t, "end_time must use HH:MM or HH:MM:SS format", fields["end_time"])
	assert.Equal(t, "type must be one of: WORKING DAY_OFF", fields["type"])
}

func TestWorkScheduleValidator_NilCandidate(t *testing.T) {
	err := newScheduleValidator().Validate(nil, ScheduleModeCreate, nil, scheduleToday)

	require.Error(t, err)
	assert.Contains(t, apperror.FieldsOf(err), "date")
}

func TestWorkScheduleValidator_ApprovedLeaveIsLocked(t *testing.T) {
	existing := &entity.WorkSchedule{ID: 7, Type: entity.WorkScheduleApprovedLeave}

	err := newScheduleValidator().Validate(validScheduleRequest(), ScheduleModeEdit, existing, scheduleToday)

	assert.ErrorIs(t, err, ErrApprovedLeaveLocked)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.ErrorIs(t, newScheduleValidator().CheckMutable(existing), ErrApprovedLeaveLocked)
	assert.NoError(t, newScheduleValidator().CheckMutable(&entity.WorkSchedule{Type: entity.WorkScheduleDayOff}))
}
