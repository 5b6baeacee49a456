package usecase

import (
	"testing"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []entity.Medicine {
	return []entity.Medicine{
		{ID: 1, Name: "Paracetamol", Concentration: "500 mg", Unit: "tablet", Price: decimal.NewFromInt(15000)},
		{ID: 2, Name: "Amoxicillin", Concentration: "250 mg", Unit: "capsule", Price: decimal.RequireFromString("2750.50")},
	}
}

func TestPrescriptionBuilder_AddItemDefaultsQuantity(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)

	index := builder.AddItem(&catalog[0])

	assert.Equal(t, 0, index)
	item := builder.Items()[0]
	assert.Equal(t, 1, item.MedicineID)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "Paracetamol", item.Medicine.Name)

	placeholder := builder.AddItem(nil)
	assert.Equal(t, 1, placeholder)
	assert.Equal(t, DraftItem{}, builder.Items()[1])
}

func TestPrescriptionBuilder_LineTotal(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	index := builder.AddItem(&catalog[0])

	require.NoError(t, builder.UpdateItem(index, ItemFieldQuantity, "3"))

	total := ComputeLineTotal(builder.Items()[index])
	assert.True(t, decimal.NewFromInt(45000).Equal(total), "got %s", total)
}

func TestPrescriptionBuilder_LineTotalWithoutMedicine(t *testing.T) {
	total := ComputeLineTotal(DraftItem{MedicineID: 99, Quantity: 4})
	assert.True(t, total.IsZero())
}

func TestPrescriptionBuilder_Total(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	first := builder.AddItem(&catalog[0])
	second := builder.AddItem(&catalog[1])
	require.NoError(t, builder.UpdateItem(first, ItemFieldQuantity, "2"))
	require.NoError(t, builder.UpdateItem(second, ItemFieldQuantity, "4"))
	builder.AddItem(nil)

	// 2 x 15000 + 4 x 2750.50
	assert.True(t, decimal.RequireFromString("41002").Equal(builder.Total()), "got %s", builder.Total())
}

func TestPrescriptionBuilder_UpdateMedicineResolvesCatalog(t *testing.T) {
	builder := NewPrescriptionBuilder(testCatalog())
	index := builder.AddItem(nil)

	require.NoError(t, builder.UpdateItem(index, ItemFieldMedicineID, " 2 "))
	assert.Equal(t, "Amoxicillin", builder.Items()[index].Medicine.Name)

	require.NoError(t, builder.UpdateItem(index, ItemFieldMedicineID, "42"))
	item := builder.Items()[index]
	assert.Equal(t, 42, item.MedicineID)
	assert.Nil(t, item.Medicine)

	require.NoError(t, builder.UpdateItem(index, ItemFieldMedicineID, ""))
	assert.Equal(t, 0, builder.Items()[index].MedicineID)
}

func TestPrescriptionBuilder_UpdateRejectsBadInput(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	index := builder.AddItem(&catalog[0])

	err := builder.UpdateItem(index, ItemFieldQuantity, "2.5")
	assert.ErrorIs(t, err, ErrInvalidItemValue)
	assert.Equal(t, "quantity must be a whole number", apperror.FieldsOf(err)["items[0].quantity"])
	assert.Equal(t, 0, builder.Items()[index].Quantity)

	err = builder.UpdateItem(index, ItemFieldMedicineID, "abc")
	assert.ErrorIs(t, err, ErrInvalidItemValue)
	assert.Contains(t, apperror.FieldsOf(err), "items[0].medicine_id")

	assert.ErrorIs(t, builder.UpdateItem(index, ItemField("price"), "1"), ErrUnknownItemField)
	assert.ErrorIs(t, builder.UpdateItem(5, ItemFieldDosage, "1x1"), ErrItemIndexOutOfRange)
	assert.ErrorIs(t, builder.UpdateItem(-1, ItemFieldDosage, "1x1"), ErrItemIndexOutOfRange)
}

func TestPrescriptionBuilder_RemoveItemShifts(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	builder.AddItem(&catalog[0])
	builder.AddItem(&catalog[1])
	builder.AddItem(nil)

	require.NoError(t, builder.RemoveItem(0))

	assert.Equal(t, 2, builder.Len())
	assert.Equal(t, 2, builder.Items()[0].MedicineID)
	assert.ErrorIs(t, builder.RemoveItem(2), ErrItemIndexOutOfRange)
}

func TestPrescriptionBuilder_ItemsReturnsCopy(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	builder.AddItem(&catalog[0])

	items := builder.Items()
	items[0].Dosage = "changed"

	assert.Empty(t, builder.Items()[0].Dosage)
}

func TestPrescriptionBuilder_ValidateForSubmit(t *testing.T) {
	catalog := testCatalog()

	t.Run("empty", func(t *testing.T) {
		err := NewPrescriptionBuilder(catalog).ValidateForSubmit()
		assert.ErrorIs(t, err, ErrEmptyPrescription)
	})

	t.Run("reports every incomplete line", func(t *testing.T) {
		builder := NewPrescriptionBuilder(catalog)
		first := builder.AddItem(&catalog[0])
		require.NoError(t, builder.UpdateItem(first, ItemFieldDosage, "   "))
		second := builder.AddItem(nil)
		require.NoError(t, builder.UpdateItem(second, ItemFieldDosage, "1x1"))
		require.NoError(t, builder.UpdateItem(second, ItemFieldQuantity, "0"))

		err := builder.ValidateForSubmit()

		require.ErrorIs(t, err, ErrIncompleteItem)
		fields := apperror.FieldsOf(err)
		assert.Equal(t, "dosage is required", fields["items[0].dosage"])
		assert.Equal(t, "select a medicine from the catalog", fields["items[1].medicine_id"])
		assert.Equal(t, "quantity must be at least 1", fields["items[1].quantity"])
		assert.Len(t, fields, 3)
	})

	t.Run("complete", func(t *testing.T) {
		builder := NewPrescriptionBuilder(catalog)
		index := builder.AddItem(&catalog[1])
		require.NoError(t, builder.UpdateItem(index, ItemFieldDosage, "3x1"))

		assert.NoError(t, builder.ValidateForSubmit())
	})
}

func TestPrescriptionBuilder_PayloadRoundTrip(t *testing.T) {
	catalog := testCatalog()
	builder := NewPrescriptionBuilder(catalog)
	first := builder.AddItem(&catalog[0])
	require.NoError(t, builder.UpdateItem(first, ItemFieldDosage, " 3x1 "))
	require.NoError(t, builder.UpdateItem(first, ItemFieldQuantity, "10"))
	require.NoError(t, builder.UpdateItem(first, ItemFieldInstructions, "after meals"))
	second := builder.AddItem(&catalog[1])
	require.NoError(t, builder.UpdateItem(second, ItemFieldDosage, "2x1"))
	require.NoError(t, builder.UpdateItem(second, ItemFieldInstructions, "  "))

	recordID := uuid.New()
	payload := builder.BuildPayload(recordID, strPtr("  "))

	assert.Equal(t, recordID, payload.MedicalRecordID)
	assert.Nil(t, payload.Notes)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "3x1", payload.Items[0].Dosage)
	assert.Equal(t, 10, payload.Items[0].Quantity)
	require.NotNil(t, payload.Items[0].Instructions)
	assert.Equal(t, "after meals", *payload.Items[0].Instructions)
	assert.Nil(t, payload.Items[1].Instructions)

	restored := NewPrescriptionBuilder(catalog)
	restored.LoadPayload(payload)

	require.Equal(t, 2, restored.Len())
	assert.Equal(t, payload, restored.BuildPayload(recordID, nil))
	assert.True(t, builder.Total().Equal(restored.Total()))
}
