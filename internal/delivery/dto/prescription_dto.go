package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type PrescribedMedicineRequest struct {
	Name      string          `json:"name" validate:"required"`
	Dosage    string          `json:"dosage" validate:"omitempty"`
	Frequency string          `json:"frequency" validate:"omitempty"`
	Duration  string          `json:"duration" validate:"omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type CreatePrescriptionRequest struct {
	PatientID    string                      `json:"patient_id" validate:"omitempty"`
	PatientName  string                      `json:"patient_name" validate:"required,min=2"`
	Medicines    []PrescribedMedicineRequest `json:"medicines" validate:"required,min=1,dive"`
	Instructions string                      `json:"instructions" validate:"omitempty"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active fulfilled expired"`
}

// Response DTOs

type PrescribedMedicineResponse struct {
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage,omitempty"`
	Frequency string          `json:"frequency,omitempty"`
	Duration  string          `json:"duration,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type PrescriptionResponse struct {
	ID           uuid.UUID                    `json:"id"`
	DoctorID     uuid.UUID                    `json:"doctor_id"`
	DoctorName   string                       `json:"doctor_name"`
	PatientID    string                       `json:"patient_id"`
	PatientName  string                       `json:"patient_name"`
	Medicines    []PrescribedMedicineResponse `json:"medicines"`
	Instructions string                       `json:"instructions,omitempty"`
	Status       string                       `json:"status"`
	Total        decimal.Decimal              `json:"total"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
