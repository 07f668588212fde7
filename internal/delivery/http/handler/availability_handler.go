package handler

import (
	"encoding/json"
	"net/http"

	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/delivery/http/middleware"
	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/response"
	"hospital-appointment-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// Upsert sets the calling doctor's availability window for a date.
// One window per date; posting again replaces it.
func (h *AvailabilityHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpsertAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.Upsert(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime, usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability saved successfully", slot)
}

func (h *AvailabilityHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slots, err := h.availabilityUsecase.ListForDoctor(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}

// ListOpenSlots shows patients a doctor's bookable windows for the
// coming week.
func (h *AvailabilityHandler) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	slots, err := h.availabilityUsecase.ListOpenSlots(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorInactive:
			response.Conflict(w, "Doctor is not accepting appointments")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}
