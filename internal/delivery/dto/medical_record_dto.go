package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// MedicalRecordRequest carries the doctor-editable fields. Required fields
// are checked by the record aggregate so whitespace-only input is caught too.
type MedicalRecordRequest struct {
	Symptoms        string  `json:"symptoms" validate:"max=10000"`
	Diagnosis       string  `json:"diagnosis" validate:"max=10000"`
	TreatmentPlan   *string `json:"treatment_plan" validate:"omitempty,max=10000"`
	DoctorNotes     *string `json:"doctor_notes" validate:"omitempty,max=10000"`
	BloodPressure   *string `json:"blood_pressure" validate:"omitempty,max=50"`
	HeartRate       *string `json:"heart_rate" validate:"omitempty,max=50"`
	Temperature     *string `json:"temperature" validate:"omitempty,max=50"`
	RespiratoryRate *string `json:"respiratory_rate" validate:"omitempty,max=50"`
	Weight          *string `json:"weight" validate:"omitempty,max=50"`
}

// Response DTOs

type VitalsResponse struct {
	BloodPressure   *string `json:"blood_pressure"`
	HeartRate       *string `json:"heart_rate"`
	Temperature     *string `json:"temperature"`
	RespiratoryRate *string `json:"respiratory_rate"`
	Weight          *string `json:"weight"`
}

type MedicalRecordResponse struct {
	ID            uuid.UUID              `json:"id"`
	AppointmentID uuid.UUID              `json:"appointment_id"`
	Symptoms      string                 `json:"symptoms"`
	Diagnosis     string                 `json:"diagnosis"`
	TreatmentPlan *string                `json:"treatment_plan"`
	DoctorNotes   *string                `json:"doctor_notes"`
	Vitals        VitalsResponse         `json:"vitals"`
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type SaveMedicalRecordResponse struct {
	Created            bool                   `json:"created"`
	Next               string                 `json:"next"`
	MedicalRecord      *MedicalRecordResponse `json:"medical_record"`
	Appointment        *AppointmentResponse   `json:"appointment,omitempty"`
	StatusAdvanceError *ErrorDetail           `json:"status_advance_error,omitempty"`
}

type EncounterResponse struct {
	State         string                 `json:"state"`
	Entry         string                 `json:"entry"`
	Redirected    bool                   `json:"redirected"`
	Appointment   *AppointmentResponse   `json:"appointment"`
	MedicalRecord *MedicalRecordResponse `json:"medical_record"`
}
