package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWorkScheduleUsecase struct {
	mock.Mock
}

func (m *MockWorkScheduleUsecase) ListSchedules(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleListRequest) (*dto.WorkScheduleListResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*dto.WorkScheduleListResponse)
	return resp, args.Error(1)
}

func (m *MockWorkScheduleUsecase) CreateSchedule(ctx context.Context, actor entity.Actor, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*dto.WorkScheduleResponse)
	return resp, args.Error(1)
}

func (m *MockWorkScheduleUsecase) UpdateSchedule(ctx context.Context, actor entity.Actor, scheduleID int, req *dto.WorkScheduleRequest) (*dto.WorkScheduleResponse, error) {
	args := m.Called(ctx, actor, scheduleID, req)
	resp, _ := args.Get(0).(*dto.WorkScheduleResponse)
	return resp, args.Error(1)
}

func (m *MockWorkScheduleUsecase) DeleteSchedule(ctx context.Context, actor entity.Actor, scheduleID int) error {
	args := m.Called(ctx, actor, scheduleID)
	return args.Error(0)
}

func TestWorkScheduleHandler_ListRejectsBadDates(t *testing.T) {
	uc := &MockWorkScheduleUsecase{}
	h := NewWorkScheduleHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/work-schedules?from=03-01-2026", nil)
	rec := serve(http.MethodGet, "/work-schedules", h.ListSchedules, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "from")
	uc.AssertNotCalled(t, "ListSchedules", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkScheduleHandler_CreateInvalid(t *testing.T) {
	uc := &MockWorkScheduleUsecase{}
	h := NewWorkScheduleHandler(uc, validator.NewValidator())
	invalid := usecase.ErrScheduleInvalid.WithFields(map[string]string{"end_time": "end_time must be after start_time"})
	uc.On("CreateSchedule", mock.Anything, doctor, mock.Anything).Return(nil, invalid)

	body := `{"date":"2026-03-11","start_time":"10:00","end_time":"09:00","type":"WORKING"}`
	req := httptest.NewRequest(http.MethodPost, "/work-schedules", strings.NewReader(body))
	rec := serve(http.MethodPost, "/work-schedules", h.CreateSchedule, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "end_time must be after start_time", decodeEnvelope(t, rec).Error["end_time"])
}

func TestWorkScheduleHandler_DeleteApprovedLeave(t *testing.T) {
	uc := &MockWorkScheduleUsecase{}
	h := NewWorkScheduleHandler(uc, validator.NewValidator())
	uc.On("DeleteSchedule", mock.Anything, doctor, 9).Return(usecase.ErrApprovedLeaveLocked)

	req := httptest.NewRequest(http.MethodDelete, "/work-schedules/9", nil)
	rec := serve(http.MethodDelete, "/work-schedules/{id}", h.DeleteSchedule, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWorkScheduleHandler_UpdateNotOwned(t *testing.T) {
	uc := &MockWorkScheduleUsecase{}
	h := NewWorkScheduleHandler(uc, validator.NewValidator())
	uc.On("UpdateSchedule", mock.Anything, doctor, 4, mock.Anything).Return(nil, usecase.ErrScheduleNotOwned)

	body := `{"date":"2026-03-11","start_time":"08:00","end_time":"09:00","type":"WORKING"}`
	req := httptest.NewRequest(http.MethodPut, "/work-schedules/4", strings.NewReader(body))
	rec := serve(http.MethodPut, "/work-schedules/{id}", h.UpdateSchedule, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWorkScheduleHandler_BadID(t *testing.T) {
	h := NewWorkScheduleHandler(&MockWorkScheduleUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodDelete, "/work-schedules/abc", nil)
	rec := serve(http.MethodDelete, "/work-schedules/{id}", h.DeleteSchedule, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
