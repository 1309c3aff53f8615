package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type CapacitySlotHandler struct {
	slotUsecase usecase.CapacitySlotUsecase
	validator   *validator.CustomValidator
}

func NewCapacitySlotHandler(slotUsecase usecase.CapacitySlotUsecase, validator *validator.CustomValidator) *CapacitySlotHandler {
	return &CapacitySlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *CapacitySlotHandler) ListCapacitySlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slotUsecase.ListCapacitySlots(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Capacity slots retrieved successfully", slots)
}

func (h *CapacitySlotHandler) GetCapacitySlot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid capacity slot ID", nil)
		return
	}

	slot, err := h.slotUsecase.GetCapacitySlot(r.Context(), id)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Capacity slot retrieved successfully", slot)
}

func (h *CapacitySlotHandler) CreateCapacitySlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCapacitySlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.CreateCapacitySlot(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Capacity slot created successfully", slot)
}

func (h *CapacitySlotHandler) UpdateCapacitySlot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid capacity slot ID", nil)
		return
	}

	var req dto.UpdateCapacitySlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.UpdateCapacitySlot(r.Context(), id, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Capacity slot updated successfully", slot)
}

func (h *CapacitySlotHandler) DeactivateCapacitySlot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid capacity slot ID", nil)
		return
	}

	if err := h.slotUsecase.DeactivateCapacitySlot(r.Context(), id); err != nil {
		response.DomainError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Capacity slot deactivated successfully", nil)
}
