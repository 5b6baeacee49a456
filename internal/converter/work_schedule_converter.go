package converter

import (
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
)

// WorkScheduleToResponse converts a WorkSchedule entity to WorkScheduleResponse DTO
func WorkScheduleToResponse(schedule *entity.WorkSchedule) *dto.WorkScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.WorkScheduleResponse{
		ID:        schedule.ID,
		UserID:    schedule.UserID,
		Date:      schedule.Date.Format("2006-01-02"),
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		Type:      string(schedule.Type),
		Notes:     schedule.Notes,
		Locked:    schedule.IsLocked(),
		CreatedAt: schedule.CreatedAt,
		UpdatedAt: schedule.UpdatedAt,
	}
}

// WorkSchedulesToResponses converts a slice of WorkSchedule entities to slice of WorkScheduleResponse DTOs
func WorkSchedulesToResponses(schedules []entity.WorkSchedule) []dto.WorkScheduleResponse {
	responses := make([]dto.WorkScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *WorkScheduleToResponse(&schedules[i])
	}
	return responses
}
