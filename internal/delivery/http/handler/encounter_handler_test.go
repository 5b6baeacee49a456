package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/delivery/http/middleware"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/usecase"
	"go-hospital-encounter/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEncounterUsecase struct {
	mock.Mock
}

func (m *MockEncounterUsecase) GetEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, entry usecase.EncounterEntry) (*dto.EncounterResponse, error) {
	args := m.Called(ctx, actor, appointmentID, entry)
	resp, _ := args.Get(0).(*dto.EncounterResponse)
	return resp, args.Error(1)
}

func (m *MockEncounterUsecase) CreateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error) {
	args := m.Called(ctx, actor, appointmentID, req)
	resp, _ := args.Get(0).(*dto.SaveMedicalRecordResponse)
	return resp, args.Error(1)
}

func (m *MockEncounterUsecase) UpdateMedicalRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.MedicalRecordRequest) (*dto.SaveMedicalRecordResponse, error) {
	args := m.Called(ctx, actor, appointmentID, req)
	resp, _ := args.Get(0).(*dto.SaveMedicalRecordResponse)
	return resp, args.Error(1)
}

func (m *MockEncounterUsecase) PreviewPrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.PrescriptionPreviewResponse, error) {
	args := m.Called(ctx, actor, appointmentID, req)
	resp, _ := args.Get(0).(*dto.PrescriptionPreviewResponse)
	return resp, args.Error(1)
}

func (m *MockEncounterUsecase) CreatePrescription(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.PrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	args := m.Called(ctx, actor, appointmentID, req)
	resp, _ := args.Get(0).(*dto.CreatePrescriptionResponse)
	return resp, args.Error(1)
}

func (m *MockEncounterUsecase) CompleteEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.CompleteEncounterResponse, error) {
	args := m.Called(ctx, actor, appointmentID)
	resp, _ := args.Get(0).(*dto.CompleteEncounterResponse)
	return resp, args.Error(1)
}

var doctor = entity.Actor{UserID: uuid.MustParse("0b6f3f5e-3d0e-4f7a-9a43-7c2d1e9b8a01"), RoleID: entity.RoleIDDoctor}

// serve routes req through a router so path variables resolve, with the
// doctor already authenticated.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	ctx := context.WithValue(req.Context(), middleware.UserIDKey, doctor.UserID)
	ctx = context.WithValue(ctx, middleware.RoleIDKey, doctor.RoleID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEncounterHandler_GetEncounter(t *testing.T) {
	uc := &MockEncounterUsecase{}
	h := NewEncounterHandler(uc, validator.NewValidator())
	appointmentID := uuid.New()

	uc.On("GetEncounter", mock.Anything, doctor, appointmentID, usecase.EntryCreate).
		Return(&dto.EncounterResponse{State: "NEEDS_RECORD", Entry: "create"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/appointments/"+appointmentID.String()+"/encounter?entry=create", nil)
	rec := serve(http.MethodGet, "/appointments/{id}/encounter", h.GetEncounter, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
	uc.AssertExpectations(t)
}

func TestEncounterHandler_GetEncounterBadInput(t *testing.T) {
	h := NewEncounterHandler(&MockEncounterUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/appointments/not-a-uuid/encounter", nil)
	rec := serve(http.MethodGet, "/appointments/{id}/encounter", h.GetEncounter, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/appointments/"+uuid.NewString()+"/encounter?entry=delete", nil)
	rec = serve(http.MethodGet, "/appointments/{id}/encounter", h.GetEncounter, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEncounterHandler_CreateMedicalRecord(t *testing.T) {
	uc := &MockEncounterUsecase{}
	h := NewEncounterHandler(uc, validator.NewValidator())
	appointmentID := uuid.New()

	uc.On("CreateMedicalRecord", mock.Anything, doctor, appointmentID, mock.MatchedBy(func(req *dto.MedicalRecordRequest) bool {
		return req.Symptoms == "fever" && req.Diagnosis == "influenza"
	})).Return(&dto.SaveMedicalRecordResponse{Created: true, Next: "record_detail"}, nil)

	body := `{"symptoms":"fever","diagnosis":"influenza"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/"+appointmentID.String()+"/medical-record", strings.NewReader(body))
	rec := serve(http.MethodPost, "/appointments/{id}/medical-record", h.CreateMedicalRecord, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Medical record created successfully", decodeEnvelope(t, rec).Message)
}

func TestEncounterHandler_CreateMedicalRecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid record", err: usecase.ErrRecordInvalid.WithFields(map[string]string{"symptoms": "symptoms is required"}), status: http.StatusBadRequest},
		{name: "already exists", err: usecase.ErrRecordAlreadyExists, status: http.StatusConflict},
		{name: "in flight", err: usecase.ErrSubmissionInFlight, status: http.StatusConflict},
		{name: "encounter not open", err: usecase.ErrEncounterNotOpen, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockEncounterUsecase{}
			h := NewEncounterHandler(uc, validator.NewValidator())
			appointmentID := uuid.New()
			uc.On("CreateMedicalRecord", mock.Anything, doctor, appointmentID, mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/appointments/"+appointmentID.String()+"/medical-record", strings.NewReader(`{}`))
			rec := serve(http.MethodPost, "/appointments/{id}/medical-record", h.CreateMedicalRecord, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
		})
	}
}

func TestEncounterHandler_CreatePrescriptionValidation(t *testing.T) {
	uc := &MockEncounterUsecase{}
	h := NewEncounterHandler(uc, validator.NewValidator())
	appointmentID := uuid.New()

	body := `{"items":[{"medicine_id":1,"dosage":"` + strings.Repeat("x", 300) + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/"+appointmentID.String()+"/prescriptions", strings.NewReader(body))
	rec := serve(http.MethodPost, "/appointments/{id}/prescriptions", h.CreatePrescription, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "dosage")
	uc.AssertNotCalled(t, "CreatePrescription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEncounterHandler_MalformedBody(t *testing.T) {
	h := NewEncounterHandler(&MockEncounterUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/appointments/"+uuid.NewString()+"/prescriptions/preview", strings.NewReader(`{"items":`))
	rec := serve(http.MethodPost, "/appointments/{id}/prescriptions/preview", h.PreviewPrescription, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEncounterHandler_Unauthenticated(t *testing.T) {
	h := NewEncounterHandler(&MockEncounterUsecase{}, validator.NewValidator())
	router := mux.NewRouter()
	router.HandleFunc("/appointments/{id}/complete", h.CompleteEncounter).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/"+uuid.NewString()+"/complete", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
