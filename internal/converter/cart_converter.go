package converter

import (
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartToResponse converts the full cart to its DTO, deriving line subtotals
// and the cart total.
func CartToResponse(items []entity.CartItem) *dto.CartResponse {
	responses := make([]dto.CartItemResponse, len(items))
	total := decimal.Zero

	for i, item := range items {
		subtotal := item.Subtotal()
		responses[i] = dto.CartItemResponse{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			Price:      item.Price,
			Image:      item.Image,
			Quantity:   item.Quantity,
			Subtotal:   subtotal,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		}
		total = total.Add(subtotal)
	}

	return &dto.CartResponse{
		Items: responses,
		Total: total,
	}
}
