package usecase

import (
	"context"
	"io"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockRecordService is a mock implementation of gateway.AppointmentRecordService
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) FetchEncounter(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*gateway.Encounter, error) {
	args := m.Called(ctx, actor, appointmentID)
	encounter, _ := args.Get(0).(*gateway.Encounter)
	return encounter, args.Error(1)
}

func (m *MockRecordService) CreateRecord(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	args := m.Called(ctx, actor, appointmentID, fields)
	record, _ := args.Get(0).(*entity.MedicalRecord)
	return record, args.Error(1)
}

func (m *MockRecordService) UpdateRecord(ctx context.Context, actor entity.Actor, recordID uuid.UUID, fields entity.MedicalRecordFields) (*entity.MedicalRecord, error) {
	args := m.Called(ctx, actor, recordID, fields)
	record, _ := args.Get(0).(*entity.MedicalRecord)
	return record, args.Error(1)
}

func (m *MockRecordService) AdvanceStatus(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, status entity.AppointmentStatus) (*entity.Appointment, error) {
	args := m.Called(ctx, actor, appointmentID, status)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *MockRecordService) CreatePrescription(ctx context.Context, actor entity.Actor, payload gateway.PrescriptionPayload) (*entity.Prescription, error) {
	args := m.Called(ctx, actor, payload)
	prescription, _ := args.Get(0).(*entity.Prescription)
	return prescription, args.Error(1)
}

// MockMedicineCatalog is a mock implementation of gateway.MedicineCatalog
type MockMedicineCatalog struct {
	mock.Mock
}

func (m *MockMedicineCatalog) SearchMedicines(ctx context.Context, filter entity.MedicineFilter) ([]entity.Medicine, error) {
	args := m.Called(ctx, filter)
	medicines, _ := args.Get(0).([]entity.Medicine)
	return medicines, args.Error(1)
}

// MockScheduleService is a mock implementation of gateway.ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) ListSchedules(ctx context.Context, ownerID uuid.UUID, window entity.DateRange) ([]entity.WorkSchedule, error) {
	args := m.Called(ctx, ownerID, window)
	schedules, _ := args.Get(0).([]entity.WorkSchedule)
	return schedules, args.Error(1)
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, id int) (*entity.WorkSchedule, error) {
	args := m.Called(ctx, id)
	schedule, _ := args.Get(0).(*entity.WorkSchedule)
	return schedule, args.Error(1)
}

func (m *MockScheduleService) CreateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleService) UpdateSchedule(ctx context.Context, schedule *entity.WorkSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleService) DeleteSchedule(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuditService is a mock implementation of service.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{}) {
	m.Called(ctx, actor, action, entityName, entityID, newValue)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	m.Called(ctx, actor, action, entityName, entityID, oldValue, newValue)
}

func (m *MockAuditService) LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{}) {
	m.Called(ctx, actor, action, entityName, entityID, oldValue)
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func strPtr(s string) *string {
	return &s
}
