package repository

import (
	"context"

	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type MealPlanRepository interface {
	Create(ctx context.Context, plan *entity.MealPlan) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.MealPlan, error)
}
