package handler

import (
	"net/http"

	"hospital-appointment-system/internal/delivery/http/middleware"
	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardUsecase.AdminDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.dashboardUsecase.DoctorDashboard(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) Patient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.dashboardUsecase.PatientDashboard(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
