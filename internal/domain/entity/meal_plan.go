package entity

import (
	"time"

	"github.com/google/uuid"
)

// MealPlan is an AI-generated nutrition plan saved by a patient.
type MealPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Profile   JSON      `gorm:"type:jsonb" json:"profile,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}
