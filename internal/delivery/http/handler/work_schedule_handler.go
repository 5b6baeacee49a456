package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/delivery/http/middleware"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/response"
	"go-hospital-encounter/pkg/validator"

	"github.com/gorilla/mux"
)

// WorkScheduleHandler serves the signed-in doctor's own schedule. Request
// rules live in the usecase's validator, so bodies are only decoded here.
type WorkScheduleHandler struct {
	scheduleUsecase usecase.WorkScheduleUsecase
	validator       *validator.CustomValidator
}

func NewWorkScheduleHandler(scheduleUsecase usecase.WorkScheduleUsecase, validator *validator.CustomValidator) *WorkScheduleHandler {
	return &WorkScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *WorkScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	req := dto.WorkScheduleListRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedules, err := h.scheduleUsecase.ListSchedules(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func (h *WorkScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	var req dto.WorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	schedule, err := h.scheduleUsecase.CreateSchedule(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

func (h *WorkScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	var req dto.WorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSchedule(r.Context(), actor, scheduleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrApprovedLeaveLocked:
			response.Forbidden(w, "Approved leave is managed by your approver and cannot be edited")
		default:
			response.FromError(w, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *WorkScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteSchedule(r.Context(), actor, scheduleID); err != nil {
		switch err {
		case usecase.ErrApprovedLeaveLocked:
			response.Forbidden(w, "Approved leave is managed by your approver and cannot be deleted")
		default:
			response.FromError(w, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}
