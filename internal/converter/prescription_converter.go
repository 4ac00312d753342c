package converter

import (
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO. The
// monetary total is derived here from the line items, never stored.
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.PrescribedMedicineResponse, len(prescription.Medicines))
	for i, med := range prescription.Medicines {
		medicines[i] = dto.PrescribedMedicineResponse{
			Name:      med.Name,
			Dosage:    med.Dosage,
			Frequency: med.Frequency,
			Duration:  med.Duration,
			Price:     med.Price,
		}
	}

	return &dto.PrescriptionResponse{
		ID:           prescription.ID,
		DoctorID:     prescription.DoctorID,
		DoctorName:   prescription.DoctorName,
		PatientID:    prescription.PatientID,
		PatientName:  prescription.PatientName,
		Medicines:    medicines,
		Instructions: prescription.Instructions,
		Status:       string(prescription.Status),
		Total:        prescription.Total(),
		CreatedAt:    prescription.CreatedAt,
		UpdatedAt:    prescription.UpdatedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities to DTOs.
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
