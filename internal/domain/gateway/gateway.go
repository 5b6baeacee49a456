// Package gateway declares the collaborators the encounter workflow talks to.
// Implementations live in internal/service; tests substitute mocks.
package gateway

import (
	"context"

	"go-hospital-encounter/internal/domain/entity"

	"github.com/google/uuid"
)

// Encounter is the appointment together with its medical record, if one
// exists. The record carries its prescriptions, items and medicines.
type Encounter struct {
	Appointment   *entity.Appointment
	MedicalRecord *entity.MedicalRecord
}

// PrescriptionItemPayload is one line of a prescription as sent on the wire.
type PrescriptionItemPayload struct {
	MedicineID   int     `json:"medicine_id"`
	Dosage       string  `json:"dosage"`
	Quantity     int     `json:"quantity"`
	Instructions *string `json:"instructions,omitempty"`
}

// PrescriptionPayload is the create-prescription request body.
type PrescriptionPayload struct {
	MedicalRecordID uuid.UUID                 `json:"medical_record_id"`
	Notes           *string                   `json:"notes,omitempty"`
	Items           []PrescriptionItemPayload `json:"items"`
}

// AppointmentRecordService owns appointments, medical records and
// prescriptions. Every call is made on behalf of an actor.
type AppointmentRecordService interface {
	FetchEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*Encounter, error)
	CreateRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error)
	UpdateRecord(ctx context.Context, actor entity.Actor, recordID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error)
	AdvanceStatus(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, status entity.AppointmentStatus) (*entity.Appointment, error)
	CreatePrescription(ctx context.Context, actor entity.Actor, payload PrescriptionPayload) (*entity.Prescription, error)
}

// MedicineCatalog is the read-only medicine lookup.
type MedicineCatalog interface {
	SearchMedicines(ctx context.Context, filter entity.MedicineFilter) ([]entity.Medicine, error)
}

// ScheduleService persists work schedule entries. It does no validation
// of its own beyond storage constraints.
type ScheduleService interface {
	ListSchedules(ctx context.Context, ownerID uuid.UUID, window entity.DateRange) ([]entity.WorkSchedule, error)
	GetSchedule(ctx context.Context, id int) (*entity.WorkSchedule, error)
	CreateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error
	UpdateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error
	DeleteSchedule(ctx context.Context, id int) error
}
