package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkScheduleType string

const (
	WorkScheduleWorking       WorkScheduleType = "WORKING"
	WorkScheduleDayOff        WorkScheduleType = "DAY_OFF"
	WorkScheduleApprovedLeave WorkScheduleType = "APPROVED_LEAVE"
)

// WorkSchedule is one doctor's availability or absence slot on a date.
// APPROVED_LEAVE rows are written by an approver and are read-only to the doctor.
type WorkSchedule struct {
	ID        int              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Date      time.Time        `gorm:"type:date;not null;index" json:"date"`
	StartTime string           `gorm:"type:time;not null" json:"start_time"`
	EndTime   string           `gorm:"type:time;not null" json:"end_time"`
	Type      WorkScheduleType `gorm:"type:varchar(20);not null;default:'WORKING'" json:"type"`
	Notes     *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// IsLocked reports whether the doctor may not edit or delete this entry
func (s *WorkSchedule) IsLocked() bool {
	return s.Type == WorkScheduleApprovedLeave
}

// DateRange bounds a schedule listing. Zero values are unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}
