package repository

import (
	"context"

	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	FindItem(ctx context.Context, userID, medicineID uuid.UUID) (*entity.CartItem, error)
	// Upsert inserts the item with quantity 1, or atomically increments the
	// existing row's quantity by 1 on (user_id, medicine_id) conflict.
	Upsert(ctx context.Context, item *entity.CartItem) error
	// AddQuantity applies quantity = quantity + delta as a single conditional
	// update that matches no row when the result would drop below 1.
	// Returns affected rows: 0 means the call was a no-op.
	AddQuantity(ctx context.Context, userID, medicineID uuid.UUID, delta int) (int64, error)
	// Delete is idempotent: removing an absent item is not an error.
	Delete(ctx context.Context, userID, medicineID uuid.UUID) error
}
