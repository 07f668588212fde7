package converter

import (
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		DepartmentID:    doctor.DepartmentID,
		Experience:      doctor.Experience,
		ConsultationFee: doctor.ConsultationFee,
		Status:          string(doctor.Status),
		CreatedAt:       doctor.CreatedAt,
		UpdatedAt:       doctor.UpdatedAt,
	}

	// Include department info if preloaded
	if doctor.Department.ID != 0 {
		response.Department = DepartmentToResponse(&doctor.Department)
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
