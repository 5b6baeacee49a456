package converter

import (
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// MedicalRecordRequestToFields converts a MedicalRecordRequest DTO to the
// writable record fields. Normalization happens in the aggregate.
func MedicalRecordRequestToFields(req *dto.MedicalRecordRequest) entity.MedicalRecordFields {
	if req == nil {
		return entity.MedicalRecordFields{}
	}

	return entity.MedicalRecordFields{
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		TreatmentPlan: req.TreatmentPlan,
		DoctorNotes:   req.DoctorNotes,
		Vitals: entity.Vitals{
			BloodPressure:   req.BloodPressure,
			HeartRate:       req.HeartRate,
			Temperature:     req.Temperature,
			RespiratoryRate: req.RespiratoryRate,
			Weight:          req.Weight,
		},
	}
}

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:            record.ID,
		AppointmentID: record.AppointmentID,
		Symptoms:      record.Symptoms,
		Diagnosis:     record.Diagnosis,
		TreatmentPlan: record.TreatmentPlan,
		DoctorNotes:   record.DoctorNotes,
		Vitals: dto.VitalsResponse{
			BloodPressure:   record.BloodPressure,
			HeartRate:       record.HeartRate,
			Temperature:     record.Temperature,
			RespiratoryRate: record.RespiratoryRate,
			Weight:          record.Weight,
		},
		Prescriptions: PrescriptionsToResponses(record.Prescriptions),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	items := make([]dto.PrescriptionItemResponse, len(prescription.Items))
	for i := range prescription.Items {
		items[i] = PrescriptionItemToResponse(&prescription.Items[i])
	}

	return &dto.PrescriptionResponse{
		ID:              prescription.ID,
		MedicalRecordID: prescription.MedicalRecordID,
		Notes:           prescription.Notes,
		DatePrescribed:  prescription.DatePrescribed,
		Items:           items,
		Total:           prescription.Total(),
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

// PrescriptionItemToResponse converts a stored PrescriptionItem to its DTO
func PrescriptionItemToResponse(item *entity.PrescriptionItem) dto.PrescriptionItemResponse {
	id := item.ID
	response := dto.PrescriptionItemResponse{
		ID:           &id,
		MedicineID:   item.MedicineID,
		Price:        decimal.Zero,
		Dosage:       item.Dosage,
		Quantity:     item.Quantity,
		Instructions: item.Instructions,
		LineTotal:    item.LineTotal(),
	}
	if item.Medicine != nil {
		response.MedicineName = item.Medicine.Name
		response.Concentration = item.Medicine.Concentration
		response.Unit = item.Medicine.Unit
		response.Price = item.Medicine.Price
	}
	return response
}
