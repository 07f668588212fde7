package handler

import (
	"net/http"

	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// ListRecent returns the newest audit entries for the admin activity feed.
func (h *AuditLogHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.ListRecent(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
