package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-hospital-encounter/internal/converter"
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	"go-hospital-encounter/internal/service"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRecordAlreadyExists       = apperror.NewConflict("medical_record_exists", "A medical record already exists for this appointment, edit it instead")
	ErrAppointmentRecordNotFound = apperror.NewNotFound("medical_record_not_found", "This appointment has no medical record yet")
)

type EncounterUsecase interface {
	GetEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, entry EncounterEntry) (*dto.EncounterResponse, error)
	CreateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error)
	UpdateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error)
	PreviewPrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.PrescriptionPreviewResponse, error)
	CreatePrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	CompleteEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.CompleteEncounterResponse, error)
}

// encounterUsecase runs one EncounterSession per request. Submissions for
// the same appointment are serialized across requests by the guard.
type encounterUsecase struct {
	log     *logrus.Logger
	records gateway.AppointmentRecordService
	catalog gateway.MedicineCatalog
	guard   *service.SubmissionGuard
	audit   service.AuditService
}

func NewEncounterUsecase(
	log *logrus.Logger,
	records gateway.AppointmentRecordService,
	catalog gateway.MedicineCatalog,
	guard *service.SubmissionGuard,
	audit service.AuditService,
) EncounterUsecase {
	return &encounterUsecase{
		log:     log,
		records: records,
		catalog: catalog,
		guard:   guard,
		audit:   audit,
	}
}

func (u *encounterUsecase) GetEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, entry EncounterEntry) (*dto.EncounterResponse, error) {
	_, result, err := u.openSession(ctx, actor, appointmentID, entry)
	if err != nil {
		return nil, err
	}

	return &dto.EncounterResponse{
		State:         string(result.State),
		Entry:         string(result.Entry),
		Redirected:    result.Redirected,
		Appointment:   converter.AppointmentToResponse(result.Appointment),
		MedicalRecord: converter.MedicalRecordToResponse(result.Record),
	}, nil
}

func (u *encounterUsecase) CreateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error) {
	release, err := u.acquire(appointmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, result, err := u.openSession(ctx, actor, appointmentID, EntryCreate)
	if err != nil {
		return nil, err
	}
	if result.Record != nil {
		return nil, ErrRecordAlreadyExists
	}

	outcome, err := session.SaveRecord(ctx, converter.MedicalRecordRequestToFields(req))
	if err != nil {
		return nil, err
	}

	record := converter.MedicalRecordToResponse(outcome.Record)
	u.audit.LogCreate(ctx, actor, entity.AuditActionRecordCreate, "medical_record", outcome.Record.ID.String(), record)
	if outcome.StatusErr == nil {
		u.audit.LogUpdate(ctx, actor, entity.AuditActionStatusAdvance, "appointment", appointmentID.String(),
			string(result.Appointment.Status), string(outcome.Appointment.Status))
	}

	u.log.Infof("Medical record created: id=%s, appointment=%s, status_advanced=%t", outcome.Record.ID, appointmentID, outcome.StatusErr == nil)
	return &dto.SaveMedicalRecordResponse{
		Created:            true,
		Next:               string(outcome.Next),
		MedicalRecord:      record,
		Appointment:        converter.AppointmentToResponse(outcome.Appointment),
		StatusAdvanceError: converter.ErrorToDetail(outcome.StatusErr),
	}, nil
}

func (u *encounterUsecase) UpdateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error) {
	release, err := u.acquire(appointmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, result, err := u.openSession(ctx, actor, appointmentID, EntryEdit)
	if err != nil {
		return nil, err
	}
	if result.Record == nil {
		return nil, ErrAppointmentRecordNotFound
	}
	before := converter.MedicalRecordToResponse(result.Record)

	outcome, err := session.SaveRecord(ctx, converter.MedicalRecordRequestToFields(req))
	if err != nil {
		return nil, err
	}

	after := converter.MedicalRecordToResponse(outcome.Record)
	u.audit.LogUpdate(ctx, actor, entity.AuditActionRecordUpdate, "medical_record", outcome.Record.ID.String(), before, after)

	return &dto.SaveMedicalRecordResponse{
		Created:       false,
		Next:          string(outcome.Next),
		MedicalRecord: after,
		Appointment:   converter.AppointmentToResponse(outcome.Appointment),
	}, nil
}

// PreviewPrescription prices the request and reports what would block a
// submit, without writing anything.
func (u *encounterUsecase) PreviewPrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.PrescriptionPreviewResponse, error) {
	if _, _, err := u.openSession(ctx, actor, appointmentID, EntryEdit); err != nil {
		return nil, err
	}

	builder, err := u.buildPrescription(ctx, req)
	if err != nil {
		return nil, err
	}

	preview := &dto.PrescriptionPreviewResponse{
		Items: draftItemsToResponses(builder.Items()),
		Total: builder.Total(),
		Valid: true,
	}
	if err := builder.ValidateForSubmit(); err != nil {
		preview.Valid = false
		preview.Errors = apperror.FieldsOf(err)
		var appErr *apperror.Error
		if len(preview.Errors) == 0 && errors.As(err, &appErr) {
			preview.Errors = map[string]string{"items": appErr.Message}
		}
	}
	return preview, nil
}

func (u *encounterUsecase) CreatePrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	release, err := u.acquire(appointmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, result, err := u.openSession(ctx, actor, appointmentID, EntryEdit)
	if err != nil {
		return nil, err
	}
	// The record must exist before the catalog is consulted.
	if result.Record == nil {
		return nil, ErrRecordNotSaved
	}

	builder, err := u.buildPrescription(ctx, req)
	if err != nil {
		return nil, err
	}

	var notes *string
	if req != nil {
		notes = req.Notes
	}
	outcome, err := session.AttachPrescription(ctx, builder, notes)
	if err != nil {
		return nil, err
	}

	prescription := converter.PrescriptionToResponse(outcome.Prescription)
	u.audit.LogCreate(ctx, actor, entity.AuditActionPrescriptionCreate, "prescription", outcome.Prescription.ID.String(), prescription)

	u.log.Infof("Prescription created: id=%s, appointment=%s, items=%d", outcome.Prescription.ID, appointmentID, len(outcome.Prescription.Items))
	return &dto.CreatePrescriptionResponse{
		Prescription:  prescription,
		MedicalRecord: converter.MedicalRecordToResponse(outcome.Record),
		ReloadError:   converter.ErrorToDetail(outcome.ReloadErr),
	}, nil
}

func (u *encounterUsecase) CompleteEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.CompleteEncounterResponse, error) {
	release, err := u.acquire(appointmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, result, err := u.openSession(ctx, actor, appointmentID, EntryEdit)
	if err != nil {
		return nil, err
	}

	appointment, err := session.Complete(ctx)
	if err != nil {
		return nil, err
	}

	u.audit.LogUpdate(ctx, actor, entity.AuditActionEncounterComplete, "appointment", appointmentID.String(),
		string(result.Appointment.Status), string(appointment.Status))

	u.log.Infof("Encounter completed: appointment=%s", appointmentID)
	return &dto.CompleteEncounterResponse{
		Appointment: converter.AppointmentToResponse(appointment),
		Next:        string(NextAppointmentList),
	}, nil
}

func (u *encounterUsecase) acquire(appointmentID uuid.UUID) (func(), error) {
	release, ok := u.guard.TryAcquire(appointmentID.String())
	if !ok {
		return nil, ErrSubmissionInFlight
	}
	return release, nil
}

func (u *encounterUsecase) openSession(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, entry EncounterEntry) (*EncounterSession, *LoadResult, error) {
	session := NewEncounterSession(u.log, u.records, actor, appointmentID)
	result, err := session.Load(ctx, entry)
	if err != nil {
		return nil, nil, err
	}
	return session, result, nil
}

// buildPrescription resolves the requested medicines in one catalog call
// and replays the request through the builder.
func (u *encounterUsecase) buildPrescription(ctx context.Context, req *dto.PrescriptionRequest) (*PrescriptionBuilder, error) {
	if req == nil {
		return NewPrescriptionBuilder(nil), nil
	}

	seen := make(map[int]bool)
	ids := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		if item.MedicineID > 0 && !seen[item.MedicineID] {
			seen[item.MedicineID] = true
			ids = append(ids, item.MedicineID)
		}
	}

	var catalog []entity.Medicine
	if len(ids) > 0 {
		found, err := u.catalog.SearchMedicines(ctx, entity.MedicineFilter{IDs: ids, Limit: len(ids)})
		if err != nil {
			u.log.Warnf("Failed to resolve prescription medicines: %+v", err)
			return nil, err
		}
		catalog = found
	}

	builder := NewPrescriptionBuilder(catalog)
	for _, item := range req.Items {
		index := builder.AddItem(nil)
		// Values come from typed JSON, so none of these can fail to parse.
		_ = builder.UpdateItem(index, ItemFieldMedicineID, strconv.Itoa(item.MedicineID))
		_ = builder.UpdateItem(index, ItemFieldDosage, item.Dosage)
		_ = builder.UpdateItem(index, ItemFieldQuantity, strconv.Itoa(item.Quantity))
		if item.Instructions != nil {
			_ = builder.UpdateItem(index, ItemFieldInstructions, *item.Instructions)
		}
	}
	return builder, nil
}

func draftItemsToResponses(items []DraftItem) []dto.PrescriptionItemResponse {
	responses := make([]dto.PrescriptionItemResponse, len(items))
	for i, item := range items {
		response := dto.PrescriptionItemResponse{
			MedicineID:   item.MedicineID,
			Dosage:       item.Dosage,
			Quantity:     item.Quantity,
			Instructions: blankToNil(&item.Instructions),
			LineTotal:    ComputeLineTotal(item),
		}
		if item.Medicine != nil {
			response.MedicineName = item.Medicine.Name
			response.Concentration = item.Medicine.Concentration
			response.Unit = item.Medicine.Unit
			response.Price = item.Medicine.Price
		}
		responses[i] = response
	}
	return responses
}
