package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/delivery/http/middleware"
	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/response"
	"hospital-appointment-system/pkg/validator"

	"github.com/gorilla/mux"
)

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
	}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	department, err := h.departmentUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentExists:
			response.Conflict(w, "Department name already exists")
		default:
			response.InternalServerError(w, "Failed to create department")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	departmentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	department, err := h.departmentUsecase.Update(r.Context(), actor, departmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound:
			response.NotFound(w, "Department not found")
		case usecase.ErrDepartmentExists:
			response.Conflict(w, "Department name already exists")
		default:
			response.InternalServerError(w, "Failed to update department")
		}
		return
	}

	response.Success(w, http.StatusOK, "Department updated successfully", department)
}
