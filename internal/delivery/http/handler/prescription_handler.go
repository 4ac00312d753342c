package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/usecase"
	"felanocare-backend/pkg/response"
	"felanocare-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Create handles issuing a new prescription
// @Summary Create a prescription
// @Description Issue an active prescription from the authenticated doctor
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescriptionRequest true "Create Prescription Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.Forbidden(w, "Only doctors can issue prescriptions")
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

// GetMine handles listing the caller's prescriptions
// @Summary Get my prescriptions
// @Description Get prescriptions issued by the doctor or issued to the patient
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /prescriptions [get]
func (h *PrescriptionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.ListMine(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

// UpdateStatus handles marking a prescription fulfilled or expired
// @Summary Update prescription status
// @Description Move a prescription from active to fulfilled or expired
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Prescription ID"
// @Param request body dto.UpdatePrescriptionStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /prescriptions/{id}/status [patch]
func (h *PrescriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.SetStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPrescriptionNotFound):
			response.NotFound(w, "Prescription not found")
		case errors.Is(err, usecase.ErrPrescriptionNotOwned):
			response.Forbidden(w, "Prescription does not belong to you")
		case errors.Is(err, entity.ErrInvalidPrescriptionTransition):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrPrescriptionConflict):
			response.Conflict(w, "Prescription was updated concurrently, retry")
		default:
			response.InternalServerError(w, "Failed to update prescription status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription status updated successfully", prescription)
}
