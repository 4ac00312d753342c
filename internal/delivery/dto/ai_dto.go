package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ConsultMessage struct {
	Sender string `json:"sender" validate:"required,oneof=user ai"`
	Text   string `json:"text" validate:"required"`
}

type ConsultRequest struct {
	Message string           `json:"message" validate:"required"`
	History []ConsultMessage `json:"history" validate:"omitempty,dive"`
}

type MealPlanRequest struct {
	Age                int      `json:"age" validate:"required,gte=1,lte=120"`
	WeightKg           float64  `json:"weight_kg" validate:"required,gt=0"`
	HeightCm           float64  `json:"height_cm" validate:"required,gt=0"`
	ActivityLevel      string   `json:"activity_level" validate:"required"`
	DietaryPreferences []string `json:"dietary_preferences" validate:"omitempty"`
	HealthGoals        []string `json:"health_goals" validate:"omitempty"`
}

// Response DTOs

type ConsultResponse struct {
	Reply    string `json:"reply"`
	Degraded bool   `json:"degraded"`
}

type MealPlanResponse struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Content   string    `json:"content"`
	Degraded  bool      `json:"degraded"`
	CreatedAt time.Time `json:"created_at"`
}

type MealPlanListResponse struct {
	MealPlans []MealPlanResponse `json:"meal_plans"`
	Total     int                `json:"total"`
}
