package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AddCartItemRequest struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// Response DTOs

type CartItemResponse struct {
	MedicineID uuid.UUID       `json:"medicine_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}
