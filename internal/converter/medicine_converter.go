package converter

import (
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity to its DTO.
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:          medicine.ID,
		Name:        medicine.Name,
		Description: medicine.Description,
		Price:       medicine.Price,
		Image:       medicine.Image,
		Stock:       medicine.Stock,
		CreatedAt:   medicine.CreatedAt,
		UpdatedAt:   medicine.UpdatedAt,
	}
}

// MedicinesToResponses converts a slice of Medicine entities to DTOs.
func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i, medicine := range medicines {
		resp := MedicineToResponse(&medicine)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
