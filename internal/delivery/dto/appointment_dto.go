package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	ClinicID        uuid.UUID `json:"clinic_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
}

// ErrorDetail reports a secondary failure next to a successful result.
type ErrorDetail struct {
	Kind    string            `json:"kind"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type CompleteEncounterResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Next        string               `json:"next"`
}
