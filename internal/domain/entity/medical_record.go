package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is the clinical document for one appointment.
// AppointmentID is set once at creation and never changes.
type MedicalRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	Symptoms        string    `gorm:"type:text;not null" json:"symptoms"`
	Diagnosis       string    `gorm:"type:text;not null" json:"diagnosis"`
	TreatmentPlan   *string   `gorm:"type:text" json:"treatment_plan,omitempty"`
	DoctorNotes     *string   `gorm:"type:text" json:"doctor_notes,omitempty"`
	BloodPressure   *string   `gorm:"type:varchar(50)" json:"blood_pressure,omitempty"`
	HeartRate       *string   `gorm:"type:varchar(50)" json:"heart_rate,omitempty"`
	Temperature     *string   `gorm:"type:varchar(50)" json:"temperature,omitempty"`
	RespiratoryRate *string   `gorm:"type:varchar(50)" json:"respiratory_rate,omitempty"`
	Weight          *string   `gorm:"type:varchar(50)" json:"weight,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Prescriptions []Prescription `gorm:"foreignKey:MedicalRecordID" json:"prescriptions"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// Vitals are free-text measurements; every field is optional.
type Vitals struct {
	BloodPressure   *string
	HeartRate       *string
	Temperature     *string
	RespiratoryRate *string
	Weight          *string
}

// MedicalRecordFields is the closed set of fields a doctor may write on a
// record. Appointment, prescriptions and timestamps are not part of it.
type MedicalRecordFields struct {
	Symptoms      string
	Diagnosis     string
	TreatmentPlan *string
	DoctorNotes   *string
	Vitals        Vitals
}

// Normalize trims the required fields and turns blank optional fields into
// absent ones, so an empty input is never stored as an empty string.
func (f MedicalRecordFields) Normalize() MedicalRecordFields {
	return MedicalRecordFields{
		Symptoms:      strings.TrimSpace(f.Symptoms),
		Diagnosis:     strings.TrimSpace(f.Diagnosis),
		TreatmentPlan: optional(f.TreatmentPlan),
		DoctorNotes:   optional(f.DoctorNotes),
		Vitals: Vitals{
			BloodPressure:   optional(f.Vitals.BloodPressure),
			HeartRate:       optional(f.Vitals.HeartRate),
			Temperature:     optional(f.Vitals.Temperature),
			RespiratoryRate: optional(f.Vitals.RespiratoryRate),
			Weight:          optional(f.Vitals.Weight),
		},
	}
}

// MissingRequired returns a message per missing required field, keyed by
// the JSON field name.
func (f MedicalRecordFields) MissingRequired() map[string]string {
	missing := make(map[string]string)
	if strings.TrimSpace(f.Symptoms) == "" {
		missing["symptoms"] = "symptoms is required"
	}
	if strings.TrimSpace(f.Diagnosis) == "" {
		missing["diagnosis"] = "diagnosis is required"
	}
	return missing
}

// ApplyFields overwrites the record's clinical content with f.
func (r *MedicalRecord) ApplyFields(f MedicalRecordFields) {
	r.Symptoms = f.Symptoms
	r.Diagnosis = f.Diagnosis
	r.TreatmentPlan = f.TreatmentPlan
	r.DoctorNotes = f.DoctorNotes
	r.BloodPressure = f.Vitals.BloodPressure
	r.HeartRate = f.Vitals.HeartRate
	r.Temperature = f.Vitals.Temperature
	r.RespiratoryRate = f.Vitals.RespiratoryRate
	r.Weight = f.Vitals.Weight
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
