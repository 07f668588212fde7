package converter

import (
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
)

// DepartmentToResponse converts a Department entity to its DTO
func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	return &dto.DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
	}
}

// DepartmentsToResponses converts a slice of Department entities to DTOs
func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i, department := range departments {
		resp := DepartmentToResponse(&department)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
