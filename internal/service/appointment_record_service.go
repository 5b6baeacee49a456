package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	domainRepo "go-hospital-encounter/internal/domain/repository"
	"go-hospital-encounter/internal/repository"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = apperror.NewNotFound("appointment_not_found", "Appointment not found")
	ErrNotAppointmentDoctor = apperror.NewForbidden("not_appointment_doctor", "You are not the doctor for this appointment")
	ErrRecordNotFound       = apperror.NewNotFound("medical_record_not_found", "Medical record not found")
	ErrRecordExists         = apperror.NewConflict("medical_record_exists", "A medical record already exists for this appointment")
	ErrRecordRejected       = apperror.NewServerRejected("invalid_medical_record", "Medical record is incomplete", nil)
	ErrStatusTransition     = apperror.NewServerRejected("invalid_status_transition", "Appointment status cannot be changed", nil)
	ErrStatusChanged        = apperror.NewConflict("status_changed", "Appointment status changed, reload and try again")
	ErrPrescriptionRejected = apperror.NewServerRejected("invalid_prescription", "Prescription is invalid", nil)
	ErrUnknownMedicine      = apperror.NewServerRejected("unknown_medicine", "One or more medicines do not exist", nil)
)

// AppointmentRecordService is the PostgreSQL-backed owner of appointments,
// medical records and prescriptions. Only the appointment's doctor may
// read or write through it.
type AppointmentRecordService struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  domainRepo.AppointmentRepository
	recordRepo       domainRepo.MedicalRecordRepository
	prescriptionRepo domainRepo.PrescriptionRepository
	medicineRepo     domainRepo.MedicineRepository
	now              func() time.Time
}

var _ gateway.AppointmentRecordService = (*AppointmentRecordService)(nil)

func NewAppointmentRecordService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo domainRepo.AppointmentRepository,
	recordRepo domainRepo.MedicalRecordRepository,
	prescriptionRepo domainRepo.PrescriptionRepository,
	medicineRepo domainRepo.MedicineRepository,
) *AppointmentRecordService {
	return &AppointmentRecordService{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		recordRepo:       recordRepo,
		prescriptionRepo: prescriptionRepo,
		medicineRepo:     medicineRepo,
		now:              time.Now,
	}
}

// FetchEncounter loads the appointment and its record in parallel.
func (s *AppointmentRecordService) FetchEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*gateway.Encounter, error) {
	var (
		appointment *entity.Appointment
		record      *entity.MedicalRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.appointmentRepo.FindByID(s.db.WithContext(gctx), appointmentID)
		appointment = found
		return err
	})
	g.Go(func() error {
		found, err := s.recordRepo.FindByAppointmentID(s.db.WithContext(gctx), appointmentID)
		record = found
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warnf("Failed to load encounter for appointment %s: %+v", appointmentID, err)
		return nil, translateError(err, "Failed to load encounter")
	}

	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := authorize(actor, appointment); err != nil {
		return nil, err
	}

	return &gateway.Encounter{Appointment: appointment, MedicalRecord: record}, nil
}

func (s *AppointmentRecordService) CreateRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	fields = fields.Normalize()
	if missing := fields.MissingRequired(); len(missing) > 0 {
		return nil, ErrRecordRejected.WithFields(missing)
	}

	record := &entity.MedicalRecord{AppointmentID: appointmentID}
	record.ApplyFields(fields)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := s.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if err := authorize(actor, appointment); err != nil {
			return err
		}

		existing, err := s.recordRepo.FindByAppointmentID(tx, appointmentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrRecordExists
		}

		return s.recordRepo.Create(tx, record)
	})
	if err != nil {
		if repository.IsDuplicateKeyError(err, "appointment_id") {
			return nil, ErrRecordExists
		}
		s.log.Warnf("Failed to create medical record for appointment %s: %+v", appointmentID, err)
		return nil, translateError(err, "Failed to create medical record")
	}

	record.Prescriptions = []entity.Prescription{}
	s.log.Infof("Medical record created: id=%s, appointment=%s", record.ID, appointmentID)
	return record, nil
}

// UpdateRecord rewrites the clinical fields. The appointment link and the
// prescriptions are never touched.
func (s *AppointmentRecordService) UpdateRecord(ctx context.Context, actor entity.Actor, recordID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	fields = fields.Normalize()
	if missing := fields.MissingRequired(); len(missing) > 0 {
		return nil, ErrRecordRejected.WithFields(missing)
	}

	var record *entity.MedicalRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.recordRepo.FindByID(tx, recordID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrRecordNotFound
		}

		appointment, err := s.appointmentRepo.FindByID(tx, found.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if err := authorize(actor, appointment); err != nil {
			return err
		}

		found.ApplyFields(fields)
		if err := s.recordRepo.UpdateFields(tx, found); err != nil {
			return err
		}
		record = found
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to update medical record %s: %+v", recordID, err)
		return nil, translateError(err, "Failed to update medical record")
	}

	return record, nil
}

// AdvanceStatus moves the appointment along the status table. The update is
// conditional on the status read, so a concurrent change yields a conflict.
func (s *AppointmentRecordService) AdvanceStatus(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, status entity.AppointmentStatus) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrAppointmentNotFound
		}
		if err := authorize(actor, found); err != nil {
			return err
		}

		if !found.Status.CanTransitionTo(status) {
			return ErrStatusTransition.WithMessage(
				fmt.Sprintf("Appointment cannot move from %s to %s", found.Status, status))
		}

		affected, err := s.appointmentRepo.UpdateStatus(tx, appointmentID, found.Status, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStatusChanged
		}

		found.Status = status
		appointment = found
		return nil
	})
	if err != nil {
		s.log.Warnf("Failed to advance appointment %s to %s: %+v", appointmentID, status, err)
		return nil, translateError(err, "Failed to update appointment status")
	}

	s.log.Infof("Appointment status advanced: id=%s, status=%s", appointmentID, status)
	return appointment, nil
}

// CreatePrescription re-checks the payload, verifies every medicine exists and
// stores the prescription with its items in one transaction.
func (s *AppointmentRecordService) CreatePrescription(ctx context.Context, actor entity.Actor, payload gateway.PrescriptionPayload) (*entity.Prescription, error) {
	if fields := checkPrescriptionPayload(payload); len(fields) > 0 {
		return nil, ErrPrescriptionRejected.WithFields(fields)
	}

	prescription := &entity.Prescription{
		MedicalRecordID: payload.MedicalRecordID,
		Notes:           trimmedOrNil(payload.Notes),
		DatePrescribed:  s.now(),
		Items:           make([]entity.PrescriptionItem, len(payload.Items)),
	}
	for i, item := range payload.Items {
		prescription.Items[i] = entity.PrescriptionItem{
			MedicineID:   item.MedicineID,
			Dosage:       strings.TrimSpace(item.Dosage),
			Quantity:     item.Quantity,
			Instructions: trimmedOrNil(item.Instructions),
			Position:     i,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.recordRepo.FindByID(tx, payload.MedicalRecordID)
		if err != nil {
			return err
		}
		if record == nil {
			return ErrRecordNotFound
		}

		appointment, err := s.appointmentRepo.FindByID(tx, record.AppointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if err := authorize(actor, appointment); err != nil {
			return err
		}

		if err := s.checkMedicinesExist(tx, payload.Items); err != nil {
			return err
		}

		return s.prescriptionRepo.Create(tx, prescription)
	})
	if err != nil {
		s.log.Warnf("Failed to create prescription for record %s: %+v", payload.MedicalRecordID, err)
		return nil, translateError(err, "Failed to create prescription")
	}

	// Reload so items carry their medicines for totals
	full, err := s.prescriptionRepo.FindByID(s.db.WithContext(ctx), prescription.ID)
	if err != nil || full == nil {
		s.log.Warnf("Failed to reload prescription %s: %+v", prescription.ID, err)
		return prescription, nil
	}

	s.log.Infof("Prescription created: id=%s, record=%s, items=%d", full.ID, full.MedicalRecordID, len(full.Items))
	return full, nil
}

func (s *AppointmentRecordService) checkMedicinesExist(tx *gorm.DB, items []gateway.PrescriptionItemPayload) error {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.MedicineID)
	}

	found, err := s.medicineRepo.FindExistingIDs(tx, ids)
	if err != nil {
		return err
	}
	known := make(map[int]bool, len(found))
	for _, id := range found {
		known[id] = true
	}

	fields := make(map[string]string)
	for i, item := range items {
		if !known[item.MedicineID] {
			fields[fmt.Sprintf("items[%d].medicine_id", i)] = fmt.Sprintf("medicine %d does not exist", item.MedicineID)
		}
	}
	if len(fields) > 0 {
		return ErrUnknownMedicine.WithFields(fields)
	}
	return nil
}

func checkPrescriptionPayload(payload gateway.PrescriptionPayload) map[string]string {
	fields := make(map[string]string)
	if payload.MedicalRecordID == uuid.Nil {
		fields["medical_record_id"] = "medical_record_id is required"
	}
	if len(payload.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range payload.Items {
		if item.MedicineID <= 0 {
			fields[fmt.Sprintf("items[%d].medicine_id", i)] = "medicine_id is required"
		}
		if strings.TrimSpace(item.Dosage) == "" {
			fields[fmt.Sprintf("items[%d].dosage", i)] = "dosage is required"
		}
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be at least 1"
		}
	}
	return fields
}

func authorize(actor entity.Actor, appointment *entity.Appointment) error {
	if appointment.DoctorID != actor.UserID {
		return ErrNotAppointmentDoctor
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
