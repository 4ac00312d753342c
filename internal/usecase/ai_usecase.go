package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/domain/repository"
	"felanocare-backend/internal/infrastructure/ai"

	"github.com/sirupsen/logrus"
)

const (
	// How many trailing history turns are folded into the consult prompt.
	consultHistoryWindow = 3

	consultFallback = "I'm sorry, the health assistant is temporarily unavailable. " +
		"For urgent concerns please contact your doctor directly."

	mealPlanFallback = "The meal planner is temporarily unavailable. " +
		"A general guideline: three balanced meals a day with vegetables, lean protein and whole grains, and plenty of water."
)

type AIUsecase interface {
	Consult(ctx context.Context, req *dto.ConsultRequest) (*dto.ConsultResponse, error)
	GenerateMealPlan(ctx context.Context, req *dto.MealPlanRequest) (*dto.MealPlanResponse, error)
	ListMealPlans(ctx context.Context) (*dto.MealPlanListResponse, error)
}

type aiUsecase struct {
	log          *logrus.Logger
	generator    ai.Generator
	temperature  float32
	mealPlanRepo repository.MealPlanRepository
}

// NewAIUsecase accepts a nil generator; every request then takes the
// degraded path instead of failing.
func NewAIUsecase(
	log *logrus.Logger,
	generator ai.Generator,
	temperature float32,
	mealPlanRepo repository.MealPlanRepository,
) AIUsecase {
	return &aiUsecase{
		log:          log,
		generator:    generator,
		temperature:  temperature,
		mealPlanRepo: mealPlanRepo,
	}
}

// Consult answers a free-form health question, folding in the last few
// history turns for continuity. Backend failures degrade to a canned reply,
// never an error.
func (u *aiUsecase) Consult(ctx context.Context, req *dto.ConsultRequest) (*dto.ConsultResponse, error) {
	prompt := buildConsultPrompt(req)

	reply, err := u.generate(ctx, prompt)
	if err != nil {
		u.log.Warnf("Consult generation degraded: %+v", err)
		return &dto.ConsultResponse{Reply: consultFallback, Degraded: true}, nil
	}

	return &dto.ConsultResponse{Reply: reply}, nil
}

// GenerateMealPlan produces a personalized plan and persists it under the
// requesting user. Degraded plans are returned but not persisted.
func (u *aiUsecase) GenerateMealPlan(ctx context.Context, req *dto.MealPlanRequest) (*dto.MealPlanResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	prompt := buildMealPlanPrompt(req)

	content, err := u.generate(ctx, prompt)
	if err != nil {
		u.log.Warnf("Meal plan generation degraded: %+v", err)
		return &dto.MealPlanResponse{Content: mealPlanFallback, Degraded: true}, nil
	}

	plan := &entity.MealPlan{
		UserID: userID,
		Profile: entity.JSON{
			"age":                 req.Age,
			"weight_kg":           req.WeightKg,
			"height_cm":           req.HeightCm,
			"activity_level":      req.ActivityLevel,
			"dietary_preferences": req.DietaryPreferences,
			"health_goals":        req.HealthGoals,
		},
		Content: content,
	}

	if err := u.mealPlanRepo.Create(ctx, plan); err != nil {
		// The plan was generated; losing the persisted copy is not fatal
		u.log.Warnf("Failed to persist meal plan for %s: %+v", userID, err)
	}

	return &dto.MealPlanResponse{
		ID:        plan.ID,
		Content:   content,
		CreatedAt: plan.CreatedAt,
	}, nil
}

// ListMealPlans returns the caller's saved plans, newest first.
func (u *aiUsecase) ListMealPlans(ctx context.Context) (*dto.MealPlanListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	plans, err := u.mealPlanRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to list meal plans for %s: %+v", userID, err)
		return nil, err
	}

	responses := make([]dto.MealPlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = dto.MealPlanResponse{
			ID:        plan.ID,
			Content:   plan.Content,
			CreatedAt: plan.CreatedAt,
		}
	}

	return &dto.MealPlanListResponse{
		MealPlans: responses,
		Total:     len(responses),
	}, nil
}

func (u *aiUsecase) generate(ctx context.Context, prompt string) (string, error) {
	if u.generator == nil {
		return "", ai.ErrUnavailable
	}
	return u.generator.Generate(ctx, prompt, u.temperature)
}

func buildConsultPrompt(req *dto.ConsultRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a friendly healthcare assistant. Answer concisely, ")
	sb.WriteString("recommend seeing a doctor for anything serious, and never diagnose.\n\n")

	history := req.History
	if len(history) > consultHistoryWindow {
		history = history[len(history)-consultHistoryWindow:]
	}
	for _, msg := range history {
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Sender, msg.Text))
	}

	sb.WriteString("user: ")
	sb.WriteString(req.Message)
	return sb.String()
}

func buildMealPlanPrompt(req *dto.MealPlanRequest) string {
	var sb strings.Builder
	sb.WriteString("Create a 7-day meal plan for a person with this profile:\n")
	sb.WriteString(fmt.Sprintf("- Age: %d\n", req.Age))
	sb.WriteString(fmt.Sprintf("- Weight: %.1f kg\n", req.WeightKg))
	sb.WriteString(fmt.Sprintf("- Height: %.1f cm\n", req.HeightCm))
	sb.WriteString(fmt.Sprintf("- Activity level: %s\n", req.ActivityLevel))
	if len(req.DietaryPreferences) > 0 {
		sb.WriteString(fmt.Sprintf("- Dietary preferences: %s\n", strings.Join(req.DietaryPreferences, ", ")))
	}
	if len(req.HealthGoals) > 0 {
		sb.WriteString(fmt.Sprintf("- Health goals: %s\n", strings.Join(req.HealthGoals, ", ")))
	}
	sb.WriteString("Give each day as breakfast, lunch, dinner and one snack.")
	return sb.String()
}
