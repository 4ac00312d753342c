package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one medicine in a user's cart. Name, price and image are
// snapshots taken at add time and do not re-sync with the catalog.
// Quantity is never persisted below 1; decrements that would reach zero
// are rejected so removal stays an explicit action.
type CartItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_medicine" json:"user_id"`
	MedicineID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_medicine" json:"medicine_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image      string          `gorm:"type:varchar(512)" json:"image"`
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns price * quantity for the line.
func (c *CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
