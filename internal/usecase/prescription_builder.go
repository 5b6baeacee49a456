package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemField names an editable column of a draft prescription line.
type ItemField string

const (
	ItemFieldMedicineID   ItemField = "medicine_id"
	ItemFieldDosage       ItemField = "dosage"
	ItemFieldQuantity     ItemField = "quantity"
	ItemFieldInstructions ItemField = "instructions"
)

var (
	ErrEmptyPrescription   = apperror.NewValidation("empty_prescription", "Add at least one medicine to the prescription", nil)
	ErrIncompleteItem      = apperror.NewValidation("incomplete_item", "Every item needs a medicine, a dosage and a quantity of at least 1", nil)
	ErrInvalidItemValue    = apperror.NewValidation("invalid_item_value", "Prescription item value is invalid", nil)
	ErrItemIndexOutOfRange = apperror.NewValidation("item_index_out_of_range", "Prescription item does not exist", nil)
	ErrUnknownItemField    = apperror.NewValidation("unknown_item_field", "Prescription item field is not editable", nil)
)

// DraftItem is one line of a prescription being composed. Medicine is the
// catalog entry resolved for MedicineID, or nil when unresolved.
type DraftItem struct {
	MedicineID   int
	Medicine     *entity.Medicine
	Dosage       string
	Quantity     int
	Instructions string
}

// PrescriptionBuilder holds the ordered draft lines of one prescription and
// resolves medicine ids against a catalog snapshot.
type PrescriptionBuilder struct {
	catalog map[int]*entity.Medicine
	items   []DraftItem
}

func NewPrescriptionBuilder(catalog []entity.Medicine) *PrescriptionBuilder {
	b := &PrescriptionBuilder{catalog: make(map[int]*entity.Medicine, len(catalog))}
	for i := range catalog {
		b.catalog[catalog[i].ID] = &catalog[i]
	}
	return b
}

// AddItem appends a line and returns its index. A nil medicine adds an
// empty placeholder line.
func (b *PrescriptionBuilder) AddItem(medicine *entity.Medicine) int {
	item := DraftItem{}
	if medicine != nil {
		item.MedicineID = medicine.ID
		item.Medicine = medicine
		item.Quantity = 1
	}
	b.items = append(b.items, item)
	return len(b.items) - 1
}

// UpdateItem sets one field of the line at index from raw input. A changed
// medicine id is resolved against the catalog right away. A quantity that
// is not a whole number is stored as 0 and reported as a field error.
func (b *PrescriptionBuilder) UpdateItem(index int, field ItemField, value string) error {
	if index < 0 || index >= len(b.items) {
		return ErrItemIndexOutOfRange
	}
	item := &b.items[index]

	switch field {
	case ItemFieldMedicineID:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			item.MedicineID = 0
			item.Medicine = nil
			return nil
		}
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			item.MedicineID = 0
			item.Medicine = nil
			return ErrInvalidItemValue.WithFields(map[string]string{
				itemFieldKey(index, ItemFieldMedicineID): "medicine_id must be a number",
			})
		}
		item.MedicineID = id
		item.Medicine = b.catalog[id]
	case ItemFieldDosage:
		item.Dosage = value
	case ItemFieldQuantity:
		quantity, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			item.Quantity = 0
			return ErrInvalidItemValue.WithFields(map[string]string{
				itemFieldKey(index, ItemFieldQuantity): "quantity must be a whole number",
			})
		}
		item.Quantity = quantity
	case ItemFieldInstructions:
		item.Instructions = value
	default:
		return ErrUnknownItemField
	}
	return nil
}

// RemoveItem drops the line at index; later lines shift down by one.
func (b *PrescriptionBuilder) RemoveItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return ErrItemIndexOutOfRange
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// Items returns a copy of the draft lines in order.
func (b *PrescriptionBuilder) Items() []DraftItem {
	return append([]DraftItem(nil), b.items...)
}

func (b *PrescriptionBuilder) Len() int {
	return len(b.items)
}

// ComputeLineTotal is quantity x price, or zero without a resolved medicine.
func ComputeLineTotal(item DraftItem) decimal.Decimal {
	if item.Medicine == nil {
		return decimal.Zero
	}
	return item.Medicine.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func (b *PrescriptionBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(ComputeLineTotal(item))
	}
	return total
}

// ValidateForSubmit reports every incomplete line at once.
func (b *PrescriptionBuilder) ValidateForSubmit() error {
	if len(b.items) == 0 {
		return ErrEmptyPrescription
	}

	fields := make(map[string]string)
	for i, item := range b.items {
		if item.MedicineID == 0 || item.Medicine == nil {
			fields[itemFieldKey(i, ItemFieldMedicineID)] = "select a medicine from the catalog"
		}
		if strings.TrimSpace(item.Dosage) == "" {
			fields[itemFieldKey(i, ItemFieldDosage)] = "dosage is required"
		}
		if item.Quantity < 1 {
			fields[itemFieldKey(i, ItemFieldQuantity)] = "quantity must be at least 1"
		}
	}
	if len(fields) > 0 {
		return ErrIncompleteItem.WithFields(fields)
	}
	return nil
}

// BuildPayload renders the wire request. Display-only data (resolved
// medicine, prices) is not included.
func (b *PrescriptionBuilder) BuildPayload(recordID uuid.UUID, notes *string) gateway.PrescriptionPayload {
	payload := gateway.PrescriptionPayload{
		MedicalRecordID: recordID,
		Notes:           blankToNil(notes),
		Items:           make([]gateway.PrescriptionItemPayload, len(b.items)),
	}
	for i, item := range b.items {
		instructions := item.Instructions
		payload.Items[i] = gateway.PrescriptionItemPayload{
			MedicineID:   item.MedicineID,
			Dosage:       strings.TrimSpace(item.Dosage),
			Quantity:     item.Quantity,
			Instructions: blankToNil(&instructions),
		}
	}
	return payload
}

// LoadPayload replaces the draft with the lines of payload, resolving each
// medicine id against the catalog.
func (b *PrescriptionBuilder) LoadPayload(payload gateway.PrescriptionPayload) {
	b.items = make([]DraftItem, len(payload.Items))
	for i, line := range payload.Items {
		item := DraftItem{
			MedicineID: line.MedicineID,
			Medicine:   b.catalog[line.MedicineID],
			Dosage:     line.Dosage,
			Quantity:   line.Quantity,
		}
		if line.Instructions != nil {
			item.Instructions = *line.Instructions
		}
		b.items[i] = item
	}
}

func itemFieldKey(index int, field ItemField) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
