package converter

import (
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date.Format(dateLayout),
		Time:      appointment.Time,
		Reason:    appointment.Reason,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}

	// Include related records when preloaded
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Treatment != nil {
		response.Treatment = TreatmentToResponse(appointment.Treatment)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
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

// TreatmentToResponse converts a Treatment entity to its DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:            treatment.ID,
		AppointmentID: treatment.AppointmentID,
		Diagnosis:     treatment.Diagnosis,
		Prescription:  treatment.Prescription,
		Notes:         treatment.Notes,
		CreatedAt:     treatment.CreatedAt,
	}
}
