package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending        AppointmentStatus = "PENDING"
	AppointmentStatusApproved       AppointmentStatus = "APPROVED"
	AppointmentStatusInProgress     AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted      AppointmentStatus = "COMPLETED"
	AppointmentStatusPaymentPending AppointmentStatus = "PAYMENT_PENDING"
	AppointmentStatusCancelled      AppointmentStatus = "CANCELLED"
)

// appointmentTransitions lists the statuses each status may move to.
// COMPLETED and CANCELLED are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:        {AppointmentStatusApproved, AppointmentStatusCancelled},
	AppointmentStatusApproved:       {AppointmentStatusInProgress, AppointmentStatusPaymentPending, AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusInProgress:     {AppointmentStatusPaymentPending, AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusPaymentPending: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusPaymentPending, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an appointment in status s may move to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled visit. It is owned by the scheduling
// side of the hospital; the encounter workflow only reads it and advances
// its status.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClinicID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinic_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null" json:"appointment_time"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsApproved checks if appointment is approved
func (a *Appointment) IsApproved() bool {
	return a.Status == AppointmentStatusApproved
}

// IsCompleted checks if appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
