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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book reserves a (doctor, date, time) slot for the calling patient.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorInactive:
			response.Conflict(w, "Doctor is not accepting appointments")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Time slot is already booked")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Cancel releases a Booked appointment. Permitted for the owning
// patient, the assigned doctor, and admins.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), actor, appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentActor:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotActive:
			response.Conflict(w, "Appointment is no longer booked")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// Complete closes out a Booked appointment with the treatment record.
// Only the assigned doctor may complete, and not before the visit date.
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.Complete(r.Context(), actor, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentActor:
			response.Forbidden(w, "Appointment is not assigned to you")
		case usecase.ErrAppointmentNotActive:
			response.Conflict(w, "Appointment is no longer booked")
		case usecase.ErrFutureAppointment:
			response.Error(w, http.StatusBadRequest, "Cannot complete an appointment scheduled for a future date", nil)
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", result)
}

func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListUpcoming(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// TreatmentHistory returns the calling patient's completed visits with
// their treatment records.
func (h *AppointmentHandler) TreatmentHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	history, err := h.appointmentUsecase.TreatmentHistory(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get treatment history")
		return
	}

	response.Success(w, http.StatusOK, "Treatment history retrieved successfully", history)
}

// PatientHistory returns one patient's visit history to a doctor who
// has treated them.
func (h *AppointmentHandler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	history, err := h.appointmentUsecase.PatientHistory(r.Context(), actor, patientID)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNotAppointmentActor:
			response.Forbidden(w, "Patient has no appointments with you")
		default:
			response.InternalServerError(w, "Failed to get patient history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient history retrieved successfully", history)
}
