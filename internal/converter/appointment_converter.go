package converter

import (
	"errors"

	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/pkg/apperror"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.Patient.FullName,
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.Doctor.FullName,
		ClinicID:        appointment.ClinicID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: appointment.AppointmentTime,
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
	}
}

// ErrorToDetail converts a secondary failure to an ErrorDetail DTO
func ErrorToDetail(err error) *dto.ErrorDetail {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return &dto.ErrorDetail{
			Kind:    string(apperror.KindInternal),
			Code:    "internal",
			Message: "Unexpected error",
		}
	}

	return &dto.ErrorDetail{
		Kind:    string(appErr.Kind),
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}
}
