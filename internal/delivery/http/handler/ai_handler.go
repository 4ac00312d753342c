package handler

import (
	"encoding/json"
	"net/http"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/usecase"
	"felanocare-backend/pkg/response"
	"felanocare-backend/pkg/validator"
)

type AIHandler struct {
	aiUsecase usecase.AIUsecase
	validator *validator.CustomValidator
}

func NewAIHandler(aiUsecase usecase.AIUsecase, validator *validator.CustomValidator) *AIHandler {
	return &AIHandler{
		aiUsecase: aiUsecase,
		validator: validator,
	}
}

// Consult handles a health consultation question
// @Summary Ask the health assistant
// @Description Ask a free-form health question; degraded replies carry degraded=true
// @Tags AI
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConsultRequest true "Consult Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /ai/consult [post]
func (h *AIHandler) Consult(w http.ResponseWriter, r *http.Request) {
	var req dto.ConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply, err := h.aiUsecase.Consult(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to process consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation processed successfully", reply)
}

// GenerateMealPlan handles generating and saving a meal plan
// @Summary Generate a meal plan
// @Description Generate a personalized meal plan from a health profile
// @Tags AI
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MealPlanRequest true "Meal Plan Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /ai/meal-plans [post]
func (h *AIHandler) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.MealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.aiUsecase.GenerateMealPlan(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to generate meal plan")
		return
	}

	response.Success(w, http.StatusOK, "Meal plan generated successfully", plan)
}

// GetMealPlans handles listing saved meal plans
// @Summary Get my meal plans
// @Description Get the authenticated user's saved meal plans, newest first
// @Tags AI
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /ai/meal-plans [get]
func (h *AIHandler) GetMealPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.aiUsecase.ListMealPlans(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get meal plans")
		return
	}

	response.Success(w, http.StatusOK, "Meal plans retrieved successfully", plans)
}
