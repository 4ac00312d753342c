package converter

import (
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		PatientName: appointment.PatientName,
		DoctorName:  appointment.DoctorName,
		Date:        appointment.Date.Format("2006-01-02"),
		Time:        appointment.Time,
		Reason:      appointment.Reason,
		Status:      string(appointment.Status),
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
