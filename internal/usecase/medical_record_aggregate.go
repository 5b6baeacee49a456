package usecase

import (
	"context"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
)

var (
	ErrRecordInvalid  = apperror.NewValidation("invalid_medical_record", "Medical record is incomplete", nil)
	ErrRecordNotSaved = apperror.NewPrerequisiteMissing("record_not_saved", "Save the medical record before prescribing")
)

// MedicalRecordAggregate enforces the record rules locally before anything
// reaches the record service.
type MedicalRecordAggregate struct {
	records gateway.AppointmentRecordService
	actor   entity.Actor
}

func NewMedicalRecordAggregate(records gateway.AppointmentRecordService, actor entity.Actor) *MedicalRecordAggregate {
	return &MedicalRecordAggregate{records: records, actor: actor}
}

func (a *MedicalRecordAggregate) Create(ctx context.Context, appointmentID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	normalized, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}
	return a.records.CreateRecord(ctx, a.actor, appointmentID, normalized)
}

func (a *MedicalRecordAggregate) Update(ctx context.Context, recordID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	normalized, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}
	return a.records.UpdateRecord(ctx, a.actor, recordID, normalized)
}

// AttachPrescription creates a prescription under record and appends it to
// record.Prescriptions. record must already be saved.
func (a *MedicalRecordAggregate) AttachPrescription(ctx context.Context, record *entity.MedicalRecord, payload gateway.PrescriptionPayload) (*entity.Prescription, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrRecordNotSaved
	}
	if len(payload.Items) == 0 {
		return nil, ErrEmptyPrescription
	}

	payload.MedicalRecordID = record.ID
	prescription, err := a.records.CreatePrescription(ctx, a.actor, payload)
	if err != nil {
		return nil, err
	}

	record.Prescriptions = append(record.Prescriptions, *prescription)
	return prescription, nil
}

func prepareFields(fields entity.MedicalRecordFields) (entity.MedicalRecordFields, error) {
	normalized := fields.Normalize()
	if missing := normalized.MissingRequired(); len(missing) > 0 {
		return normalized, ErrRecordInvalid.WithFields(missing)
	}
	return normalized, nil
}
