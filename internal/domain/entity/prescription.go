package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prescription is a dated set of medicine lines issued against one
// medical record. It is created once and never edited.
type Prescription struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MedicalRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"medical_record_id"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`
	DatePrescribed  time.Time `gorm:"not null" json:"date_prescribed"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionItem is one medicine line. The price is never stored here;
// it is joined from the medicine when totals are computed.
type PrescriptionItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicineID     int       `gorm:"not null;index" json:"medicine_id"`
	Dosage         string    `gorm:"type:varchar(255);not null" json:"dosage"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Instructions   *string   `gorm:"type:text" json:"instructions,omitempty"`
	Position       int       `gorm:"not null;default:0" json:"-"`

	// Relationships
	Medicine *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}

// LineTotal is quantity x medicine price, or zero when the medicine is not loaded.
func (i *PrescriptionItem) LineTotal() decimal.Decimal {
	if i.Medicine == nil {
		return decimal.Zero
	}
	return i.Medicine.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals of every item.
func (p *Prescription) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Items {
		total = total.Add(p.Items[i].LineTotal())
	}
	return total
}
