package repository

import (
	"context"
	"errors"

	"felanocare-backend/internal/domain/entity"
	domainRepo "felanocare-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItem(ctx context.Context, userID, medicineID uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND medicine_id = ?", userID, medicineID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert relies on the (user_id, medicine_id) unique index: the increment
// happens inside the database, so concurrent adds from two sessions of the
// same account cannot lose a count.
func (r *cartRepository) Upsert(ctx context.Context, item *entity.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "medicine_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + 1"),
		}),
	}).Create(item).Error
}

// AddQuantity is a no-op (0 rows) when the delta would push quantity to zero
// or below. Items leave the cart through Delete only.
func (r *cartRepository) AddQuantity(ctx context.Context, userID, medicineID uuid.UUID, delta int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.CartItem{}).
		Where("user_id = ? AND medicine_id = ? AND quantity + ? > 0", userID, medicineID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return result.RowsAffected, result.Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, medicineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND medicine_id = ?", userID, medicineID).
		Delete(&entity.CartItem{}).Error
}
