package usecase

import (
	"context"
	"sync"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EncounterState is where an encounter session stands.
type EncounterState string

const (
	EncounterStateUnloaded                    EncounterState = "UNLOADED"
	EncounterStateNeedsRecord                 EncounterState = "NEEDS_RECORD"
	EncounterStateRecordOpen                  EncounterState = "RECORD_OPEN"
	EncounterStateRecordCompletePendingStatus EncounterState = "RECORD_COMPLETE_PENDING_STATUS"
	EncounterStateCompleted                   EncounterState = "COMPLETED"
	EncounterStateAppointmentNotFound         EncounterState = "APPOINTMENT_NOT_FOUND"
	EncounterStateForbidden                   EncounterState = "FORBIDDEN"
)

// EncounterEntry is how the caller intends to open the encounter.
type EncounterEntry string

const (
	EntryCreate EncounterEntry = "create"
	EntryEdit   EncounterEntry = "edit"
)

// NextStep tells the caller where to go after a save.
type NextStep string

const (
	NextRecordDetail    NextStep = "record_detail"
	NextAppointmentList NextStep = "appointment_list"
)

var (
	ErrEncounterNotOpen       = apperror.NewPrerequisiteMissing("encounter_not_open", "The encounter is not open")
	ErrSubmissionInFlight     = apperror.NewConflict("submission_in_flight", "A submission for this encounter is already in progress")
	ErrRecordRequired         = apperror.NewPrerequisiteMissing("record_required", "Create the medical record before completing the encounter")
	ErrAppointmentNotApproved = apperror.NewPrerequisiteMissing("appointment_not_approved", "Only approved appointments can be completed")
)

type LoadResult struct {
	State       EncounterState
	Entry       EncounterEntry
	Redirected  bool
	Appointment *entity.Appointment
	Record      *entity.MedicalRecord
}

// SaveOutcome is the result of SaveRecord. StatusErr is set when the record
// was created but the follow-up status advance failed; the record is saved
// regardless.
type SaveOutcome struct {
	Record      *entity.MedicalRecord
	Created     bool
	Appointment *entity.Appointment
	StatusErr   error
	Next        NextStep
}

// AttachOutcome is the result of AttachPrescription. ReloadErr is set when
// the prescription was stored but the encounter could not be reloaded.
type AttachOutcome struct {
	Prescription *entity.Prescription
	Record       *entity.MedicalRecord
	ReloadErr    error
}

// EncounterSession drives one doctor through one appointment:
// load, write the record, prescribe, complete.
//
// Mutating calls are serialized by submitMu and never queue: a second
// submission while one is running fails with ErrSubmissionInFlight.
// State is only changed once the collaborator has answered.
type EncounterSession struct {
	log           *logrus.Logger
	records       gateway.AppointmentRecordService
	aggregate     *MedicalRecordAggregate
	actor         entity.Actor
	appointmentID uuid.UUID

	submitMu sync.Mutex

	mu          sync.RWMutex
	state       EncounterState
	appointment *entity.Appointment
	record      *entity.MedicalRecord
}

func NewEncounterSession(log *logrus.Logger, records gateway.AppointmentRecordService, actor entity.Actor, appointmentID uuid.UUID) *EncounterSession {
	return &EncounterSession{
		log:           log,
		records:       records,
		aggregate:     NewMedicalRecordAggregate(records, actor),
		actor:         actor,
		appointmentID: appointmentID,
		state:         EncounterStateUnloaded,
	}
}

func (s *EncounterSession) State() EncounterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *EncounterSession) Appointment() *entity.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointment
}

func (s *EncounterSession) Record() *entity.MedicalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

// Load fetches the appointment and its record in one call. Asking to
// create when a record already exists redirects to edit, and asking to
// edit without a record redirects to create.
//
// A missing appointment or a foreign one leaves the session in a terminal
// state; the returned result reports it alongside the error.
func (s *EncounterSession) Load(ctx context.Context, entry EncounterEntry) (*LoadResult, error) {
	encounter, err := s.records.FetchEncounter(ctx, s.actor, s.appointmentID)
	if err != nil {
		switch apperror.KindOf(err) {
		case apperror.KindNotFound:
			s.setState(EncounterStateAppointmentNotFound)
			return &LoadResult{State: EncounterStateAppointmentNotFound, Entry: entry}, err
		case apperror.KindForbidden:
			s.setState(EncounterStateForbidden)
			return &LoadResult{State: EncounterStateForbidden, Entry: entry}, err
		}
		return nil, err
	}

	result := &LoadResult{
		Entry:       entry,
		Appointment: encounter.Appointment,
		Record:      encounter.MedicalRecord,
	}
	if encounter.MedicalRecord != nil {
		result.State = EncounterStateRecordOpen
		if entry == EntryCreate {
			result.Entry = EntryEdit
			result.Redirected = true
		}
	} else {
		result.State = EncounterStateNeedsRecord
		if entry == EntryEdit {
			result.Entry = EntryCreate
			result.Redirected = true
		}
	}

	s.mu.Lock()
	s.state = result.State
	s.appointment = encounter.Appointment
	s.record = encounter.MedicalRecord
	s.mu.Unlock()

	return result, nil
}

// SaveRecord creates the record when none exists, otherwise updates it.
//
// A first-time create is followed by one attempt to advance the appointment
// to COMPLETED. That attempt's failure is reported in SaveOutcome.StatusErr
// and does not undo the create.
func (s *EncounterSession) SaveRecord(ctx context.Context, fields entity.MedicalRecordFields) (*SaveOutcome, error) {
	if !s.submitMu.TryLock() {
		return nil, ErrSubmissionInFlight
	}
	defer s.submitMu.Unlock()

	state, appointment, record := s.snapshot()
	switch state {
	case EncounterStateNeedsRecord:
		return s.createRecord(ctx, appointment, fields)
	case EncounterStateRecordOpen:
		return s.updateRecord(ctx, appointment, record, fields)
	default:
		return nil, ErrEncounterNotOpen
	}
}

func (s *EncounterSession) createRecord(ctx context.Context, appointment *entity.Appointment, fields entity.MedicalRecordFields) (*SaveOutcome, error) {
	record, err := s.aggregate.Create(ctx, appointment.ID, fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.record = record
	s.state = EncounterStateRecordOpen
	s.mu.Unlock()

	outcome := &SaveOutcome{
		Record:      record,
		Created:     true,
		Appointment: appointment,
		Next:        NextRecordDetail,
	}

	updated, err := s.records.AdvanceStatus(ctx, s.actor, appointment.ID, entity.AppointmentStatusCompleted)
	if err != nil {
		s.log.Warnf("Record %s saved but appointment %s status advance failed: %+v", record.ID, appointment.ID, err)
		outcome.StatusErr = err
		return outcome, nil
	}

	s.mu.Lock()
	s.appointment = updated
	s.mu.Unlock()
	outcome.Appointment = updated
	return outcome, nil
}

func (s *EncounterSession) updateRecord(ctx context.Context, appointment *entity.Appointment, current *entity.MedicalRecord, fields entity.MedicalRecordFields) (*SaveOutcome, error) {
	record, err := s.aggregate.Update(ctx, current.ID, fields)
	if err != nil {
		return nil, err
	}
	if record.Prescriptions == nil {
		record.Prescriptions = current.Prescriptions
	}

	s.mu.Lock()
	s.record = record
	s.mu.Unlock()

	return &SaveOutcome{
		Record:      record,
		Appointment: appointment,
		Next:        NextRecordDetail,
	}, nil
}

// AttachPrescription submits the builder's lines as a new prescription on
// the saved record and then reloads the whole encounter.
func (s *EncounterSession) AttachPrescription(ctx context.Context, builder *PrescriptionBuilder, notes *string) (*AttachOutcome, error) {
	if !s.submitMu.TryLock() {
		return nil, ErrSubmissionInFlight
	}
	defer s.submitMu.Unlock()

	state, _, record := s.snapshot()
	switch state {
	case EncounterStateRecordOpen:
	case EncounterStateNeedsRecord:
		return nil, ErrRecordNotSaved
	default:
		return nil, ErrEncounterNotOpen
	}

	if err := builder.ValidateForSubmit(); err != nil {
		return nil, err
	}

	draft := *record
	draft.Prescriptions = append([]entity.Prescription(nil), record.Prescriptions...)
	prescription, err := s.aggregate.AttachPrescription(ctx, &draft, builder.BuildPayload(record.ID, notes))
	if err != nil {
		return nil, err
	}

	outcome := &AttachOutcome{Prescription: prescription}

	encounter, err := s.records.FetchEncounter(ctx, s.actor, s.appointmentID)
	if err != nil || encounter.MedicalRecord == nil {
		if err == nil {
			err = apperror.NewInternal("Encounter reload returned no medical record", nil)
		}
		s.log.Warnf("Prescription %s saved but encounter %s reload failed: %+v", prescription.ID, s.appointmentID, err)
		s.mu.Lock()
		s.record = &draft
		s.mu.Unlock()
		outcome.Record = &draft
		outcome.ReloadErr = err
		return outcome, nil
	}

	s.mu.Lock()
	s.appointment = encounter.Appointment
	s.record = encounter.MedicalRecord
	s.mu.Unlock()
	outcome.Record = encounter.MedicalRecord
	return outcome, nil
}

// Complete advances an APPROVED appointment with a saved record to
// COMPLETED. On failure the session returns to RECORD_OPEN.
func (s *EncounterSession) Complete(ctx context.Context) (*entity.Appointment, error) {
	if !s.submitMu.TryLock() {
		return nil, ErrSubmissionInFlight
	}
	defer s.submitMu.Unlock()

	state, appointment, _ := s.snapshot()
	switch state {
	case EncounterStateRecordOpen:
	case EncounterStateNeedsRecord:
		return nil, ErrRecordRequired
	default:
		return nil, ErrEncounterNotOpen
	}
	if !appointment.IsApproved() {
		return nil, ErrAppointmentNotApproved
	}

	// Pending is visible while AdvanceStatus runs; every return path below
	// leaves it for RECORD_OPEN or COMPLETED.
	s.setState(EncounterStateRecordCompletePendingStatus)

	updated, err := s.records.AdvanceStatus(ctx, s.actor, appointment.ID, entity.AppointmentStatusCompleted)
	if err != nil {
		s.setState(EncounterStateRecordOpen)
		return nil, err
	}

	s.mu.Lock()
	s.appointment = updated
	s.state = EncounterStateCompleted
	s.mu.Unlock()
	return updated, nil
}

func (s *EncounterSession) snapshot() (EncounterState, *entity.Appointment, *entity.MedicalRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.appointment, s.record
}

func (s *EncounterSession) setState(state EncounterState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
