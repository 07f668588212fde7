package http

import (
	"net/http"

	"hospital-appointment-system/internal/delivery/http/handler"
	"hospital-appointment-system/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	departmentHandler   *handler.DepartmentHandler
	dashboardHandler    *handler.DashboardHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	departmentHandler *handler.DepartmentHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		departmentHandler:   departmentHandler,
		dashboardHandler:    dashboardHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/dashboard", r.dashboardHandler.Admin).Methods(http.MethodGet)

	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Deactivate).Methods(http.MethodDelete)

	admin.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.Deactivate).Methods(http.MethodDelete)

	admin.HandleFunc("/departments", r.departmentHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/departments", r.departmentHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/departments/{id}", r.departmentHandler.Update).Methods(http.MethodPut)

	admin.HandleFunc("/appointments", r.appointmentHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/upcoming", r.appointmentHandler.ListUpcoming).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListRecent).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/dashboard", r.dashboardHandler.Doctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments", r.appointmentHandler.ListAssigned).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	doctor.HandleFunc("/availability", r.availabilityHandler.ListMine).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.availabilityHandler.Upsert).Methods(http.MethodPut)
	doctor.HandleFunc("/patients/{id}/history", r.appointmentHandler.PatientHistory).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/dashboard", r.dashboardHandler.Patient).Methods(http.MethodGet)
	patient.HandleFunc("/doctors", r.doctorHandler.Browse).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/{id}/slots", r.availabilityHandler.ListOpenSlots).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	patient.HandleFunc("/treatments", r.appointmentHandler.TreatmentHistory).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
