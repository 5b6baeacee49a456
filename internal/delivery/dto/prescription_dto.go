package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type PrescriptionItemRequest struct {
	MedicineID   int     `json:"medicine_id"`
	Dosage       string  `json:"dosage" validate:"max=255"`
	Quantity     int     `json:"quantity"`
	Instructions *string `json:"instructions" validate:"omitempty,max=2000"`
}

type PrescriptionRequest struct {
	Notes *string                   `json:"notes" validate:"omitempty,max=2000"`
	Items []PrescriptionItemRequest `json:"items" validate:"dive"`
}

// Response DTOs

type PrescriptionItemResponse struct {
	ID            *uuid.UUID      `json:"id,omitempty"`
	MedicineID    int             `json:"medicine_id"`
	MedicineName  string          `json:"medicine_name,omitempty"`
	Concentration string          `json:"concentration,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Dosage        string          `json:"dosage"`
	Quantity      int             `json:"quantity"`
	Instructions  *string         `json:"instructions"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

type PrescriptionResponse struct {
	ID              uuid.UUID                  `json:"id"`
	MedicalRecordID uuid.UUID                  `json:"medical_record_id"`
	Notes           *string                    `json:"notes"`
	DatePrescribed  time.Time                  `json:"date_prescribed"`
	Items           []PrescriptionItemResponse `json:"items"`
	Total           decimal.Decimal            `json:"total"`
}

type PrescriptionPreviewResponse struct {
	Items  []PrescriptionItemResponse `json:"items"`
	Total  decimal.Decimal            `json:"total"`
	Valid  bool                       `json:"valid"`
	Errors map[string]string          `json:"errors,omitempty"`
}

type CreatePrescriptionResponse struct {
	Prescription  *PrescriptionResponse  `json:"prescription"`
	MedicalRecord *MedicalRecordResponse `json:"medical_record"`
	ReloadError   *ErrorDetail           `json:"reload_error,omitempty"`
}
