package converter

import (
	"go-hospital-encounter/internal/delivery/dto"
	"go-hospital-encounter/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity to MedicineResponse DTO
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	categories := make([]string, len(medicine.Categories))
	for i, category := range medicine.Categories {
		categories[i] = category.Name
	}

	return &dto.MedicineResponse{
		ID:            medicine.ID,
		Name:          medicine.Name,
		Concentration: medicine.Concentration,
		Unit:          medicine.Unit,
		Price:         medicine.Price,
		Categories:    categories,
	}
}

// MedicinesToResponses converts a slice of Medicine entities to slice of MedicineResponse DTOs
func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i := range medicines {
		responses[i] = *MedicineToResponse(&medicines[i])
	}
	return responses
}
