package converter

import (
	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
)

// AvailabilityToResponse converts an AvailabilitySlot entity to its DTO
func AvailabilityToResponse(slot *entity.AvailabilitySlot) *dto.AvailabilityResponse {
	if slot == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:          slot.ID,
		DoctorID:    slot.DoctorID,
		Date:        slot.Date.Format(dateLayout),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		IsAvailable: slot.IsAvailable,
		UpdatedAt:   slot.UpdatedAt,
	}
}

// AvailabilitiesToResponses converts a slice of AvailabilitySlot entities to DTOs
func AvailabilitiesToResponses(slots []entity.AvailabilitySlot) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(slots))
	for i, slot := range slots {
		resp := AvailabilityToResponse(&slot)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
