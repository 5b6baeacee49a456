package http

import (
	"net/http"

	"go-hospital-encounter/internal/delivery/http/handler"
	"go-hospital-encounter/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	encounterHandler    *handler.EncounterHandler
	medicineHandler     *handler.MedicineHandler
	workScheduleHandler *handler.WorkScheduleHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	encounterHandler *handler.EncounterHandler,
	medicineHandler *handler.MedicineHandler,
	workScheduleHandler *handler.WorkScheduleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		encounterHandler:    encounterHandler,
		medicineHandler:     medicineHandler,
		workScheduleHandler: workScheduleHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Medicine catalog (any signed-in user)
	catalog := api.PathPrefix("/medicines").Subrouter()
	catalog.Use(r.authMiddleware.Authenticate)
	catalog.HandleFunc("", r.medicineHandler.SearchMedicines).Methods(http.MethodGet)

	// Encounter routes (doctor only)
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/appointments/{id}/encounter", r.encounterHandler.GetEncounter).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/medical-record", r.encounterHandler.CreateMedicalRecord).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/medical-record", r.encounterHandler.UpdateMedicalRecord).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments/{id}/prescriptions/preview", r.encounterHandler.PreviewPrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/prescriptions", r.encounterHandler.CreatePrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/complete", r.encounterHandler.CompleteEncounter).Methods(http.MethodPost)

	// Work schedule (doctor's own)
	doctor.HandleFunc("/work-schedules", r.workScheduleHandler.ListSchedules).Methods(http.MethodGet)
	doctor.HandleFunc("/work-schedules", r.workScheduleHandler.CreateSchedule).Methods(http.MethodPost)
	doctor.HandleFunc("/work-schedules/{id:[0-9]+}", r.workScheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	doctor.HandleFunc("/work-schedules/{id:[0-9]+}", r.workScheduleHandler.DeleteSchedule).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
