package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusPending, AppointmentStatusApproved, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusApproved, AppointmentStatusCompleted, true},
		{AppointmentStatusApproved, AppointmentStatusInProgress, true},
		{AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{AppointmentStatusPaymentPending, AppointmentStatusCompleted, true},
		{AppointmentStatusCompleted, AppointmentStatusApproved, false},
		{AppointmentStatusCancelled, AppointmentStatusApproved, false},
		{AppointmentStatus("ARCHIVED"), AppointmentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatus_IsValid(t *testing.T) {
	assert.True(t, AppointmentStatusPaymentPending.IsValid())
	assert.False(t, AppointmentStatus("approved").IsValid())
}
