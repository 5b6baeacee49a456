package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type WorkScheduleRequest struct {
	Date      string  `json:"date" validate:"required,calendardate"`     // Format: YYYY-MM-DD
	StartTime string  `json:"start_time" validate:"required,clocktime"` // Format: HH:MM or HH:MM:SS
	EndTime   string  `json:"end_time" validate:"required,clocktime"`   // Format: HH:MM or HH:MM:SS
	Type      string  `json:"type" validate:"required,oneof=WORKING DAY_OFF"`
	Notes     *string `json:"notes" validate:"omitempty,max=1000"`
}

type WorkScheduleListRequest struct {
	From string `json:"from" validate:"omitempty,calendardate"`
	To   string `json:"to" validate:"omitempty,calendardate"`
}

// Response DTOs

type WorkScheduleResponse struct {
	ID        int       `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Type      string    `json:"type"`
	Notes     *string   `json:"notes"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkScheduleListResponse struct {
	Schedules []WorkScheduleResponse `json:"schedules"`
	Total     int                    `json:"total"`
}
