package handler

import (
	"encoding/json"
	"net/http"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/usecase"
	"felanocare-backend/pkg/response"
	"felanocare-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validator.CustomValidator
}

func NewCartHandler(cartUsecase usecase.CartUsecase, validator *validator.CustomValidator) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
	}
}

// GetCart handles reading the cart snapshot
// @Summary Get cart
// @Description Get the authenticated user's cart with line subtotals and total
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.GetCart(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get cart")
		return
	}

	response.Success(w, http.StatusOK, "Cart retrieved successfully", cart)
}

// AddItem handles adding one unit of a medicine to the cart
// @Summary Add cart item
// @Description Add one unit of a medicine; adding an existing item increments its quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddCartItemRequest true "Add Cart Item Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to add cart item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Cart item added successfully", cart)
}

// ChangeQuantity handles adjusting a cart line's quantity by a signed delta
// @Summary Change cart item quantity
// @Description Apply a signed delta; a change that would drop below one is rejected
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param medicineId path string true "Medicine ID"
// @Param request body dto.ChangeQuantityRequest true "Change Quantity Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/items/{medicineId} [patch]
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medicineID, err := uuid.Parse(vars["medicineId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	var req dto.ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cart, err := h.cartUsecase.ChangeQuantity(r.Context(), medicineID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCartItemNotFound:
			response.NotFound(w, "Cart item not found")
		case usecase.ErrInvalidQuantity:
			response.BadRequest(w, "Quantity change would drop below one")
		default:
			response.InternalServerError(w, "Failed to change quantity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Cart quantity updated successfully", cart)
}

// RemoveItem handles removing a cart line
// @Summary Remove cart item
// @Description Remove a medicine from the cart; removing an absent item is a no-op
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param medicineId path string true "Medicine ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cart/items/{medicineId} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medicineID, err := uuid.Parse(vars["medicineId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	cart, err := h.cartUsecase.RemoveItem(r.Context(), medicineID)
	if err != nil {
		response.InternalServerError(w, "Failed to remove cart item")
		return
	}

	response.Success(w, http.StatusOK, "Cart item removed successfully", cart)
}
