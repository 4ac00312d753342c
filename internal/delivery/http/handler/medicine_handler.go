package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/usecase"
	"felanocare-backend/pkg/response"
	"felanocare-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MedicineHandler struct {
	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

// GetAll handles browsing the medicine catalog
// @Summary Get all medicines
// @Description Get the medicine catalog with pagination
// @Tags Medicines
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /medicines [get]
func (h *MedicineHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	medicines, total, err := h.medicineUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get medicines")
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medicines retrieved successfully", medicines, meta)
}

// GetByID handles getting a medicine by ID
// @Summary Get medicine by ID
// @Description Get a medicine by its ID
// @Tags Medicines
// @Produce json
// @Param id path string true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /medicines/{id} [get]
func (h *MedicineHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	medicine, err := h.medicineUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to get medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine retrieved successfully", medicine)
}

// Create handles adding a medicine to the catalog
// @Summary Create a new medicine
// @Description Create a new catalog medicine (admin only)
// @Tags Medicines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMedicineRequest true "Create Medicine Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/medicines [post]
func (h *MedicineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.medicineUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicineAlreadyExists:
			response.Conflict(w, "Medicine already exists")
		default:
			response.InternalServerError(w, "Failed to create medicine")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medicine created successfully", medicine)
}

// Update handles updating a catalog medicine
// @Summary Update a medicine
// @Description Update a catalog medicine by its ID (admin only)
// @Tags Medicines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Medicine ID"
// @Param request body dto.UpdateMedicineRequest true "Update Medicine Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/medicines/{id} [put]
func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	var req dto.UpdateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.medicineUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to update medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine updated successfully", medicine)
}

// Delete handles removing a medicine from the catalog
// @Summary Delete a medicine
// @Description Delete a catalog medicine by its ID (admin only)
// @Tags Medicines
// @Security BearerAuth
// @Produce json
// @Param id path string true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/medicines/{id} [delete]
func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	if err := h.medicineUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to delete medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine deleted successfully", nil)
}
