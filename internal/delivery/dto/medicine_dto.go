package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Image       string          `json:"image" validate:"omitempty,url"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

type UpdateMedicineRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Image       string          `json:"image" validate:"omitempty,url"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

// Response DTOs

type MedicineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
}
