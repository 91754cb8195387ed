package http

import (
	"net/http"

	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/pkg/response"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	AppointmentHandler *handler.AppointmentHandler
	DoctorHandler      *handler.DoctorHandler
	AuditLogHandler    *handler.AuditLogHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.CORS)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public auth endpoints
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", cfg.AuthHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", cfg.AuthHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", cfg.AuthHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", cfg.AuthHandler.RefreshToken).Methods(http.MethodPost)

	// Authenticated auth endpoints
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(cfg.AuthMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", cfg.AuthHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", cfg.AuthHandler.Me).Methods(http.MethodGet)

	// Appointments: every route requires authentication; booking is limited
	// to patients and admins
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(cfg.AuthMiddleware.Authenticate)
	appointments.HandleFunc("", cfg.AppointmentHandler.List).Methods(http.MethodGet)
	appointments.Handle("", middleware.RequirePatientOrAdmin(
		http.HandlerFunc(cfg.AppointmentHandler.Create))).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", cfg.AppointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", cfg.AppointmentHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	appointments.HandleFunc("/{id}", cfg.AppointmentHandler.Delete).Methods(http.MethodDelete)

	// Doctor directory
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(cfg.AuthMiddleware.Authenticate)
	doctors.HandleFunc("", cfg.DoctorHandler.List).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", cfg.DoctorHandler.Get).Methods(http.MethodGet)

	// Admin-only audit trail
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(cfg.AuthMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", cfg.AuditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", cfg.AuditLogHandler.Get).Methods(http.MethodGet)

	return router
}
