package handler

import (
	"encoding/json"
	"net/http"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/delivery/http/middleware"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/response"
	"go-hospital-encounter/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EncounterHandler struct {
	encounterUsecase usecase.EncounterUsecase
	validator        *validator.CustomValidator
}

func NewEncounterHandler(encounterUsecase usecase.EncounterUsecase, validator *validator.CustomValidator) *EncounterHandler {
	return &EncounterHandler{
		encounterUsecase: encounterUsecase,
		validator:        validator,
	}
}

func (h *EncounterHandler) GetEncounter(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	entry := usecase.EncounterEntry(r.URL.Query().Get("entry"))
	switch entry {
	case "":
		entry = usecase.EntryEdit
	case usecase.EntryCreate, usecase.EntryEdit:
	default:
		response.Error(w, http.StatusBadRequest, "Invalid entry, use create or edit", nil)
		return
	}

	encounter, err := h.encounterUsecase.GetEncounter(r.Context(), actor, appointmentID, entry)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Encounter retrieved successfully", encounter)
}

func (h *EncounterHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	var req dto.MedicalRecordRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.encounterUsecase.CreateMedicalRecord(r.Context(), actor, appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	message := "Medical record created successfully"
	if result.StatusAdvanceError != nil {
		message = "Medical record created, but the appointment status could not be updated"
	}
	response.Success(w, http.StatusCreated, message, result)
}

func (h *EncounterHandler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	var req dto.MedicalRecordRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.encounterUsecase.UpdateMedicalRecord(r.Context(), actor, appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", result)
}

func (h *EncounterHandler) PreviewPrescription(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	var req dto.PrescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	preview, err := h.encounterUsecase.PreviewPrescription(r.Context(), actor, appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription preview calculated", preview)
}

func (h *EncounterHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	var req dto.PrescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.encounterUsecase.CreatePrescription(r.Context(), actor, appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", result)
}

func (h *EncounterHandler) CompleteEncounter(w http.ResponseWriter, r *http.Request) {
	actor, appointmentID, ok := h.actorAndAppointment(w, r)
	if !ok {
		return
	}

	result, err := h.encounterUsecase.CompleteEncounter(r.Context(), actor, appointmentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Encounter completed successfully", result)
}

func (h *EncounterHandler) actorAndAppointment(w http.ResponseWriter, r *http.Request) (entity.Actor, uuid.UUID, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
		return entity.Actor{}, uuid.Nil, false
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return entity.Actor{}, uuid.Nil, false
	}
	return actor, appointmentID, true
}

func (h *EncounterHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}
