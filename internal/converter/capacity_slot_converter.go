package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// CapacitySlotToResponse converts a CapacitySlot entity to CapacitySlotResponse DTO
func CapacitySlotToResponse(slot *entity.CapacitySlot) *dto.CapacitySlotResponse {
	if slot == nil {
		return nil
	}

	var dayOfWeek *int
	if slot.DayOfWeek != nil {
		day := int(*slot.DayOfWeek)
		dayOfWeek = &day
	}

	return &dto.CapacitySlotResponse{
		ID:          slot.ID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		MaxCapacity: slot.MaxCapacity,
		DayOfWeek:   dayOfWeek,
		IsActive:    slot.IsActive,
		CreatedAt:   slot.CreatedAt,
		UpdatedAt:   slot.UpdatedAt,
	}
}

// CapacitySlotsToResponses converts a slice of CapacitySlot entities to slice of CapacitySlotResponse DTOs
func CapacitySlotsToResponses(slots []entity.CapacitySlot) []dto.CapacitySlotResponse {
	responses := make([]dto.CapacitySlotResponse, len(slots))
	for i, slot := range slots {
		resp := CapacitySlotToResponse(&slot)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
