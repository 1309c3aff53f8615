package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// TreatmentToResponse converts a Treatment entity to TreatmentResponse DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}
	return &dto.TreatmentResponse{
		ID:              treatment.ID,
		Name:            treatment.Name,
		DurationMinutes: treatment.DurationMinutes,
		Price:           treatment.Price,
		Description:     treatment.Description,
		IsActive:        treatment.IsActive,
		CreatedAt:       treatment.CreatedAt,
		UpdatedAt:       treatment.UpdatedAt,
	}
}

// TreatmentsToResponses converts a slice of Treatment entities to slice of TreatmentResponse DTOs
func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	responses := make([]dto.TreatmentResponse, len(treatments))
	for i, treatment := range treatments {
		resp := TreatmentToResponse(&treatment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
