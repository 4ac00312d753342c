package usecase

import (
	"context"
	"strings"
	"testing"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/infrastructure/ai"

	"github.com/google/uuid"
)

func aiCtx() context.Context {
	return middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDPatient)
}

func TestConsultReturnsReply(t *testing.T) {
	usecase := NewAIUsecase(testLogger(), &stubGenerator{reply: "Drink plenty of water."}, 0.7, &mockMealPlanRepo{})

	resp, err := usecase.Consult(aiCtx(), &dto.ConsultRequest{Message: "I have a mild headache"})
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if resp.Degraded {
		t.Error("expected non-degraded response")
	}
	if resp.Reply != "Drink plenty of water." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestConsultDegradesOnBackendFailure(t *testing.T) {
	usecase := NewAIUsecase(testLogger(), &stubGenerator{err: ai.ErrUnavailable}, 0.7, &mockMealPlanRepo{})

	resp, err := usecase.Consult(aiCtx(), &dto.ConsultRequest{Message: "I have a mild headache"})
	if err != nil {
		t.Fatalf("Consult should not fail hard: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded response")
	}
	if resp.Reply == "" {
		t.Error("degraded response must still carry a reply")
	}
}

func TestConsultDegradesWithoutGenerator(t *testing.T) {
	usecase := NewAIUsecase(testLogger(), nil, 0.7, &mockMealPlanRepo{})

	resp, err := usecase.Consult(aiCtx(), &dto.ConsultRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded response with nil generator")
	}
}

func TestGenerateMealPlanPersists(t *testing.T) {
	repo := &mockMealPlanRepo{}
	usecase := NewAIUsecase(testLogger(), &stubGenerator{reply: "Day 1: oatmeal..."}, 0.7, repo)
	ctx := aiCtx()

	resp, err := usecase.GenerateMealPlan(ctx, &dto.MealPlanRequest{
		Age:           34,
		WeightKg:      72,
		HeightCm:      175,
		ActivityLevel: "moderate",
		HealthGoals:   []string{"lose weight"},
	})
	if err != nil {
		t.Fatalf("GenerateMealPlan: %v", err)
	}
	if resp.Degraded {
		t.Error("expected non-degraded plan")
	}
	if len(repo.plans) != 1 {
		t.Fatalf("persisted plans = %d, want 1", len(repo.plans))
	}

	list, err := usecase.ListMealPlans(ctx)
	if err != nil {
		t.Fatalf("ListMealPlans: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("total = %d, want 1", list.Total)
	}
}

func TestGenerateMealPlanDegradedIsNotPersisted(t *testing.T) {
	repo := &mockMealPlanRepo{}
	usecase := NewAIUsecase(testLogger(), &stubGenerator{err: ai.ErrUnavailable}, 0.7, repo)

	resp, err := usecase.GenerateMealPlan(aiCtx(), &dto.MealPlanRequest{
		Age:           34,
		WeightKg:      72,
		HeightCm:      175,
		ActivityLevel: "moderate",
	})
	if err != nil {
		t.Fatalf("GenerateMealPlan: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded plan")
	}
	if len(repo.plans) != 0 {
		t.Errorf("persisted plans = %d, want 0", len(repo.plans))
	}
}

func TestConsultPromptKeepsRecentHistoryOnly(t *testing.T) {
	req := &dto.ConsultRequest{
		Message: "And now?",
		History: []dto.ConsultMessage{
			{Sender: "user", Text: "first"},
			{Sender: "ai", Text: "second"},
			{Sender: "user", Text: "third"},
			{Sender: "ai", Text: "fourth"},
		},
	}

	prompt := buildConsultPrompt(req)

	if strings.Contains(prompt, "first") {
		t.Error("prompt should have dropped the oldest history turn")
	}
	for _, keep := range []string{"second", "third", "fourth", "And now?"} {
		if !strings.Contains(prompt, keep) {
			t.Errorf("prompt is missing %q", keep)
		}
	}
}
