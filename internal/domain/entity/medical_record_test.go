package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestMedicalRecordFields_Normalize(t *testing.T) {
	fields := MedicalRecordFields{
		Symptoms:      "  sore throat ",
		Diagnosis:     "pharyngitis",
		TreatmentPlan: ptr(""),
		DoctorNotes:   ptr("  rest  "),
		Vitals: Vitals{
			BloodPressure: ptr("120/80"),
			HeartRate:     ptr("   "),
		},
	}

	normalized := fields.Normalize()

	assert.Equal(t, "sore throat", normalized.Symptoms)
	assert.Nil(t, normalized.TreatmentPlan)
	require.NotNil(t, normalized.DoctorNotes)
	assert.Equal(t, "rest", *normalized.DoctorNotes)
	assert.Equal(t, "120/80", *normalized.Vitals.BloodPressure)
	assert.Nil(t, normalized.Vitals.HeartRate)
	assert.Nil(t, normalized.Vitals.Weight)
	// the input is left untouched
	assert.Equal(t, "  rest  ", *fields.DoctorNotes)
}

func TestMedicalRecordFields_MissingRequired(t *testing.T) {
	assert.Empty(t, MedicalRecordFields{Symptoms: "a", Diagnosis: "b"}.MissingRequired())

	missing := MedicalRecordFields{Symptoms: " \t", Diagnosis: "b"}.MissingRequired()
	assert.Equal(t, map[string]string{"symptoms": "symptoms is required"}, missing)
}

func TestMedicalRecord_ApplyFields(t *testing.T) {
	record := &MedicalRecord{Symptoms: "old", Weight: ptr("80 kg")}

	record.ApplyFields(MedicalRecordFields{Symptoms: "new", Diagnosis: "dx", Vitals: Vitals{Temperature: ptr("38.5")}})

	assert.Equal(t, "new", record.Symptoms)
	assert.Equal(t, "dx", record.Diagnosis)
	assert.Equal(t, "38.5", *record.Temperature)
	assert.Nil(t, record.Weight)
}
